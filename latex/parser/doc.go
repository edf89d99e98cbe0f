// Package parser provides an error-tolerant parser for LaTeX-like command
// markup.
//
// # Overview
//
// The source is tokenized into commands, text, braces, brackets, comments
// and verbatim spans, and the tokens are driven through a stack machine that
// builds a tree of nodes:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Builder   │
//	│  (string)   │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │  IssueSink  │
//	                                        └─────────────┘
//
// # Modes
//
// Parse builds a localized tree: every node carries start and end character
// offsets, malformed constructs are reported to an IssueSink and parsing
// continues. The only condition that stops a full parse is a closing brace
// without any open brace group; Parse then returns an *AbortError and no
// tree.
//
// ParsePrefix is the cheap variant used for completion on the text left of
// the cursor. It does not record offsets and does not collect issues: any
// malformed construct aborts with ErrPrefixAborted. Instead of offsets its
// argument nodes carry a Closed flag telling whether the matching closing
// delimiter was seen.
//
// # Tree
//
// Nodes live in a flat arena owned by a Tree and refer to each other by
// NodeID. Parent links are plain indexes:
//
//	doc, err := parser.Parse(`\section[short]{Long title}`, "main.tex", &issues)
//	cmd := doc.FirstChildOfKind(doc.Root(), parser.KindCommand)
//	arg := doc.FirstChildOfKind(cmd, parser.KindMandatoryArgument)
//	doc.InnerText(arg) // "Long title"
//
// Comments never enter the tree; they are kept on the Document and can be
// scanned for TODO and FIXME markers with ExtractTasks.
package parser
