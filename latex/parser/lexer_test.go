package parser

import (
	"testing"
)

func collect(input string, opts ...LexerOption) []Token {
	var tokens []Token
	for tok := range Tokenize(input, opts...) {
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{"", nil},
		{`\foo{bar}`, []Token{
			{TokenCommand, "foo", 0},
			{TokenBeginBrace, "{", 4},
			{TokenText, "bar", 5},
			{TokenEndBrace, "}", 8},
		}},
		{`\a[b]`, []Token{
			{TokenCommand, "a", 0},
			{TokenBeginBracket, "[", 2},
			{TokenText, "b", 3},
			{TokenEndBracket, "]", 4},
		}},
		{"a % c\nb", []Token{
			{TokenText, "a ", 0},
			{TokenComment, " c", 2},
			{TokenText, "\nb", 5},
		}},
		{`\\`, []Token{{TokenCommand, `\`, 0}}},
		{`\%x`, []Token{{TokenCommand, "%", 0}, {TokenText, "x", 2}}},
		{`\`, []Token{{TokenCommand, "", 0}}},
		{`\section*`, []Token{{TokenCommand, "section", 0}, {TokenText, "*", 8}}},
		{`\foo1`, []Token{{TokenCommand, "foo", 0}, {TokenText, "1", 4}}},
		{`ä\x`, []Token{{TokenText, "ä", 0}, {TokenCommand, "x", 1}}},
		{`\ü`, []Token{{TokenCommand, "ü", 0}}},
		{`\über`, []Token{{TokenCommand, "ü", 0}, {TokenText, "ber", 2}}},
		{"%only", []Token{{TokenComment, "only", 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := collect(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerVerbatim(t *testing.T) {
	input := `\begin{verbatim}\foo{\end{verbatim}`
	expected := []Token{
		{TokenCommand, "begin", 0},
		{TokenBeginBrace, "{", 6},
		{TokenText, "verbatim", 7},
		{TokenEndBrace, "}", 15},
		{TokenVerbatim, `\foo{`, 16},
		{TokenCommand, "end", 21},
		{TokenBeginBrace, "{", 25},
		{TokenText, "verbatim", 26},
		{TokenEndBrace, "}", 34},
	}

	got := collect(input)
	if len(got) != len(expected) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(expected))
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token %d: got %+v, want %+v", i, got[i], expected[i])
		}
	}
}

func TestLexerVerbatimUnterminated(t *testing.T) {
	got := collect(`\begin{verbatim*}x}`)
	last := got[len(got)-1]
	if last.Kind != TokenVerbatim || last.Literal != "x}" {
		t.Errorf("last token = %+v, want verbatim %q", last, "x}")
	}
}

func TestLexerOtherEnvironmentsAreTokenized(t *testing.T) {
	for _, tok := range collect(`\begin{itemize}\item x\end{itemize}`) {
		if tok.Kind == TokenVerbatim {
			t.Fatalf("unexpected verbatim token %+v", tok)
		}
	}
}

func TestLexerOptions(t *testing.T) {
	input := "\\a \\b % note\n"

	if got := collect(input, WithoutWhitespace()); len(got) != 3 {
		t.Errorf("WithoutWhitespace: got %d tokens %v, want 3", len(got), got)
	}
	for _, tok := range collect(input, WithoutComments()) {
		if tok.Kind == TokenComment {
			t.Errorf("WithoutComments: got comment token %+v", tok)
		}
	}
	got := collect(input, WithoutWhitespace(), WithoutComments())
	if len(got) != 2 || got[0].Literal != "a" || got[1].Literal != "b" {
		t.Errorf("both options: got %v, want commands a and b", got)
	}
}

func TestTokenizeIsRestartable(t *testing.T) {
	seq := Tokenize(`\a{b}[c]`)
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 7 || second != first {
		t.Errorf("got %d and %d tokens, want 7 twice", first, second)
	}
}

func TestLexerNextTokenEOF(t *testing.T) {
	l := NewLexer("x")
	if tok := l.NextToken(); tok.Kind != TokenText {
		t.Fatalf("Kind = %v, want %v", tok.Kind, TokenText)
	}
	for i := 0; i < 2; i++ {
		tok := l.NextToken()
		if tok.Kind != TokenEOF || tok.Offset != 1 {
			t.Errorf("got %+v, want EOF at 1", tok)
		}
	}
}
