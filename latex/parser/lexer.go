package parser

import (
	"iter"
	"strings"
)

// Environments whose body is passed through as a single verbatim token.
var verbatimEnvironments = []string{"verbatim", "verbatim*"}

type LexerOption func(*Lexer)

// WithoutWhitespace drops text tokens that consist of whitespace only.
func WithoutWhitespace() LexerOption {
	return func(l *Lexer) {
		l.skipWhitespace = true
	}
}

// WithoutComments drops comment tokens.
func WithoutComments() LexerOption {
	return func(l *Lexer) {
		l.skipComments = true
	}
}

type Lexer struct {
	input          []rune
	pos            int
	pending        []Token
	skipWhitespace bool
	skipComments   bool
}

func NewLexer(input string, opts ...LexerOption) *Lexer {
	l := &Lexer{
		input: []rune(input),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize returns the tokens of input as a lazy sequence. Every range over
// the sequence starts a fresh lexer, so it can be iterated more than once.
func Tokenize(input string, opts ...LexerOption) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := NewLexer(input, opts...)
		for {
			tok := l.NextToken()
			if tok.Kind == TokenEOF {
				return
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Offset returns the character offset of the next unread character.
func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) NextToken() Token {
	for {
		tok := l.scan()
		if tok.Kind == TokenComment && l.skipComments {
			continue
		}
		if tok.Kind == TokenText && l.skipWhitespace && strings.TrimSpace(tok.Literal) == "" {
			continue
		}
		return tok
	}
}

func (l *Lexer) scan() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	start := l.pos
	if start >= len(l.input) {
		return Token{Kind: TokenEOF, Offset: start}
	}

	switch l.input[start] {
	case '\\':
		return l.scanCommand(start)
	case '%':
		return l.scanComment(start)
	case '{':
		l.pos++
		return Token{Kind: TokenBeginBrace, Literal: "{", Offset: start}
	case '}':
		l.pos++
		return Token{Kind: TokenEndBrace, Literal: "}", Offset: start}
	case '[':
		l.pos++
		return Token{Kind: TokenBeginBracket, Literal: "[", Offset: start}
	case ']':
		l.pos++
		return Token{Kind: TokenEndBracket, Literal: "]", Offset: start}
	}
	return l.scanText(start)
}

func (l *Lexer) scanCommand(start int) Token {
	l.pos++
	if l.pos < len(l.input) {
		if isLetter(l.input[l.pos]) {
			for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
				l.pos++
			}
		} else {
			// control symbol such as \\ or \%
			l.pos++
		}
	}
	tok := Token{
		Kind:    TokenCommand,
		Literal: string(l.input[start+1 : l.pos]),
		Offset:  start,
	}
	if tok.Literal == "begin" {
		l.scanVerbatimEnvironment()
	}
	return tok
}

// scanVerbatimEnvironment queues the tokens of a {verbatim} argument that
// directly follows \begin, followed by the environment body as one
// verbatim token. The lexer resumes at the matching \end.
func (l *Lexer) scanVerbatimEnvironment() {
	for _, env := range verbatimEnvironments {
		name := []rune(env)
		if !l.hasPrefixAt(l.pos, "{"+env+"}") {
			continue
		}

		open := l.pos
		body := open + len(name) + 2
		l.pending = append(l.pending,
			Token{Kind: TokenBeginBrace, Literal: "{", Offset: open},
			Token{Kind: TokenText, Literal: env, Offset: open + 1},
			Token{Kind: TokenEndBrace, Literal: "}", Offset: body - 1},
		)

		end := l.indexFrom(body, `\end{`+env+"}")
		if end < 0 {
			end = len(l.input)
		}
		if end > body {
			l.pending = append(l.pending, Token{
				Kind:    TokenVerbatim,
				Literal: string(l.input[body:end]),
				Offset:  body,
			})
		}
		l.pos = end
		return
	}
}

func (l *Lexer) scanComment(start int) Token {
	l.pos++
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	return Token{
		Kind:    TokenComment,
		Literal: string(l.input[start+1 : l.pos]),
		Offset:  start,
	}
}

func (l *Lexer) scanText(start int) Token {
	for l.pos < len(l.input) && !isSpecial(l.input[l.pos]) {
		l.pos++
	}
	return Token{
		Kind:    TokenText,
		Literal: string(l.input[start:l.pos]),
		Offset:  start,
	}
}

func (l *Lexer) hasPrefixAt(at int, prefix string) bool {
	for _, r := range prefix {
		if at >= len(l.input) || l.input[at] != r {
			return false
		}
		at++
	}
	return true
}

func (l *Lexer) indexFrom(from int, needle string) int {
	for i := from; i < len(l.input); i++ {
		if l.hasPrefixAt(i, needle) {
			return i
		}
	}
	return -1
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpecial(r rune) bool {
	switch r {
	case '\\', '%', '{', '}', '[', ']':
		return true
	}
	return false
}
