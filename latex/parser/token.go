package parser

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenCommand
	TokenText
	TokenBeginBrace
	TokenEndBrace
	TokenBeginBracket
	TokenEndBracket
	TokenComment
	TokenVerbatim
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:          "EOF",
	TokenCommand:      "Command",
	TokenText:         "Text",
	TokenBeginBrace:   "{",
	TokenEndBrace:     "}",
	TokenBeginBracket: "[",
	TokenEndBracket:   "]",
	TokenComment:      "Comment",
	TokenVerbatim:     "Verbatim",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical unit of the source. Offset is the character (rune)
// index of the first character belonging to the token, including the
// leading backslash of a command and the percent sign of a comment.
// Literal excludes both.
type Token struct {
	Kind    TokenKind
	Literal string
	Offset  int
}
