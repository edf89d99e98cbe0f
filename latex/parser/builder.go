package parser

import (
	"fmt"
	"unicode/utf8"
)

// builder is the stack machine shared by Parse and ParsePrefix. The top of
// the stack is the innermost open node; the document root sits at the
// bottom. Each token kind has one transition that switches on the kind of
// the top node.
type builder struct {
	tree     *Tree
	stack    []NodeID
	comments []Comment

	// issue is called for malformed input the builder can skip over,
	// fatal for a closing brace without an open group. A non-nil error
	// stops the build.
	issue func(msg string, offset int) error
	fatal func(msg string, offset int) error
}

func newBuilder(tree *Tree) *builder {
	return &builder{
		tree:  tree,
		stack: []NodeID{tree.Root()},
	}
}

func (b *builder) step(tok Token) error {
	switch tok.Kind {
	case TokenCommand:
		return b.command(tok)
	case TokenText:
		return b.text(tok)
	case TokenBeginBrace:
		return b.beginBrace(tok)
	case TokenEndBrace:
		return b.endBrace(tok)
	case TokenBeginBracket:
		return b.beginBracket(tok)
	case TokenEndBracket:
		return b.endBracket(tok)
	case TokenComment:
		b.comments = append(b.comments, Comment{Text: tok.Literal, Offset: tok.Offset})
		return nil
	case TokenVerbatim, TokenEOF:
		return nil
	}
	return fmt.Errorf("unknown token kind %v", tok.Kind)
}

func (b *builder) top() (NodeID, NodeKind, bool) {
	if len(b.stack) == 0 {
		return NoNode, 0, false
	}
	id := b.stack[len(b.stack)-1]
	return id, b.tree.nodes[id].Kind, true
}

// pop closes the top node. In a localized tree the parent's end is
// extended to cover the popped node.
func (b *builder) pop() {
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if !b.tree.localized {
		return
	}
	n := &b.tree.nodes[id]
	if n.Parent != NoNode && b.tree.nodes[n.Parent].End < n.End {
		b.tree.nodes[n.Parent].End = n.End
	}
}

// open appends a new node to parent and pushes it.
func (b *builder) open(parent NodeID, kind NodeKind, value string, start, end int) {
	if !b.tree.localized {
		start, end = 0, 0
	}
	id := b.tree.newNode(kind, value, start, end)
	b.tree.appendChild(parent, id)
	b.stack = append(b.stack, id)
}

func (b *builder) appendText(id NodeID, literal string, offset int) {
	n := &b.tree.nodes[id]
	n.Value += literal
	if b.tree.localized {
		n.End = offset + utf8.RuneCountInString(literal)
	}
}

func (b *builder) command(tok Token) error {
	for {
		top, kind, ok := b.top()
		if !ok {
			return b.issue("Undefined parse error", tok.Offset)
		}
		switch kind {
		case KindDocument, KindMandatoryArgument, KindOptionalArgument, KindEmbraced:
			end := tok.Offset + utf8.RuneCountInString(tok.Literal) + 1
			b.open(top, KindCommand, tok.Literal, tok.Offset, end)
			return nil
		case KindCommand, KindText:
			b.pop()
		default:
			return b.issue(fmt.Sprintf("Unexpected command with %s on stack", kind), tok.Offset)
		}
	}
}

func (b *builder) text(tok Token) error {
	for {
		top, kind, ok := b.top()
		if !ok {
			return b.issue("Undefined parse error", tok.Offset)
		}
		switch kind {
		case KindDocument, KindMandatoryArgument, KindOptionalArgument, KindEmbraced:
			end := tok.Offset + utf8.RuneCountInString(tok.Literal)
			b.open(top, KindText, tok.Literal, tok.Offset, end)
			return nil
		case KindCommand, KindText:
			b.pop()
		default:
			return b.issue(fmt.Sprintf("Unexpected text with %s on stack", kind), tok.Offset)
		}
	}
}

func (b *builder) beginBrace(tok Token) error {
	for {
		top, kind, ok := b.top()
		if !ok {
			return b.issue("Undefined parse error", tok.Offset)
		}
		switch kind {
		case KindCommand:
			b.open(top, KindMandatoryArgument, "", tok.Offset, tok.Offset+1)
			return nil
		case KindDocument, KindMandatoryArgument, KindOptionalArgument, KindEmbraced:
			b.open(top, KindEmbraced, "", tok.Offset, tok.Offset+1)
			return nil
		case KindText:
			b.pop()
		default:
			return b.issue(fmt.Sprintf("Unexpected { with %s on stack", kind), tok.Offset)
		}
	}
}

// endBrace closes the innermost brace group, discarding whatever is open
// above it.
func (b *builder) endBrace(tok Token) error {
	for {
		top, kind, ok := b.top()
		if !ok {
			return b.fatal("Encountered } without {", tok.Offset)
		}
		if kind == KindMandatoryArgument || kind == KindEmbraced {
			b.close(top, tok.Offset)
			return nil
		}
		b.pop()
	}
}

func (b *builder) close(id NodeID, offset int) {
	n := &b.tree.nodes[id]
	n.Closed = true
	if b.tree.localized {
		n.End = offset + 1
	}
	b.pop()
}

func (b *builder) beginBracket(tok Token) error {
	top, kind, ok := b.top()
	if !ok {
		return b.issue("Undefined parse error", tok.Offset)
	}
	switch kind {
	case KindCommand:
		b.open(top, KindOptionalArgument, "", tok.Offset, tok.Offset+1)
	case KindText:
		b.appendText(top, "[", tok.Offset)
	case KindMandatoryArgument:
		b.open(top, KindText, "[", tok.Offset, tok.Offset+1)
	default:
		return b.issue(fmt.Sprintf("Unexpected [ with %s on stack", kind), tok.Offset)
	}
	return nil
}

// endBracket closes the optional argument nearest to the top of the stack,
// even when brace groups are open above it. Without an open optional
// argument the bracket is literal text.
func (b *builder) endBracket(tok Token) error {
	if i := b.lastOpen(KindOptionalArgument); i >= 0 {
		for len(b.stack)-1 > i {
			b.pop()
		}
		b.close(b.stack[i], tok.Offset)
		return nil
	}

	for {
		top, kind, ok := b.top()
		if !ok {
			return b.issue("Undefined parse error", tok.Offset)
		}
		switch kind {
		case KindText:
			b.appendText(top, "]", tok.Offset)
			return nil
		case KindCommand:
			b.pop()
		case KindDocument, KindMandatoryArgument, KindOptionalArgument:
			b.open(top, KindText, "]", tok.Offset, tok.Offset+1)
			return nil
		default:
			return b.issue(fmt.Sprintf("Unexpected ] with %s on stack and no optional argument", kind), tok.Offset)
		}
	}
}

func (b *builder) lastOpen(kind NodeKind) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.tree.nodes[b.stack[i]].Kind == kind {
			return i
		}
	}
	return -1
}
