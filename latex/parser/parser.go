package parser

// Parse builds the localized tree of source. Issues are delivered to sink
// as they are found; a nil sink discards them. When a closing brace has no
// open brace group, Parse stops and returns an *AbortError instead of a
// document.
func Parse(source, file string, sink IssueSink) (*Document, error) {
	if sink == nil {
		sink = discardSink{}
	}
	doc := newDocument(file, source)

	b := newBuilder(&doc.Tree)
	b.issue = func(msg string, offset int) error {
		sink.Issue(Issue{Message: msg, Severity: SeverityError, Start: offset, End: offset + 1, File: file})
		return nil
	}
	b.fatal = func(msg string, offset int) error {
		issue := Issue{Message: msg, Severity: SeverityError, Start: offset, End: offset + 1, File: file}
		sink.Issue(issue)
		return &AbortError{Issue: issue}
	}

	lexer := NewLexer(source)
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		if err := b.step(tok); err != nil {
			return nil, err
		}
	}

	for _, id := range b.stack {
		n := doc.nodes[id]
		switch n.Kind {
		case KindMandatoryArgument, KindEmbraced:
			sink.Issue(Issue{Message: "Unclosed {", Severity: SeverityError, Start: n.Start, End: n.Start + 1, File: file})
		case KindOptionalArgument:
			sink.Issue(Issue{Message: "Unclosed [", Severity: SeverityError, Start: n.Start, End: n.Start + 1, File: file})
		}
	}
	for len(b.stack) > 0 {
		b.pop()
	}

	doc.comments = b.comments
	return doc, nil
}

// ParsePrefix builds an unlocalized tree of source, typically the text left
// of the cursor. Argument nodes report through Closed whether their closing
// delimiter was seen. Any malformed input yields ErrPrefixAborted.
func ParsePrefix(source string) (*Tree, error) {
	tree := &Tree{}
	tree.newNode(KindDocument, "", 0, 0)

	b := newBuilder(tree)
	b.issue = func(string, int) error { return ErrPrefixAborted }
	b.fatal = b.issue

	for tok := range Tokenize(source, WithoutComments()) {
		if err := b.step(tok); err != nil {
			return nil, err
		}
	}
	return tree, nil
}
