package lexer

import (
	"bufio"
	"bytes"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/KimNorgaard/go-lakbay/errors"
	"github.com/KimNorgaard/go-lakbay/internal/token"
)

// Lexer holds the state for tokenizing Lakbay source.
type Lexer struct {
	r      *bufio.Reader
	buf    bytes.Buffer
	ch     rune
	line   int
	strict bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// Strict makes the lexer report characters that match no lexical rule as
// ILLEGAL tokens instead of dropping them.
func Strict() Option {
	return func(l *Lexer) {
		l.strict = true
	}
}

// New creates and returns a new Lexer.
func New(r io.Reader, opts ...Option) *Lexer {
	l := &Lexer{
		r:    bufio.NewReader(r),
		line: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.readRune()
	return l
}

// Tokenize scans the whole input and returns its tokens in source order,
// terminated by a single EOF token. An error is only possible in strict mode.
func Tokenize(input []byte, opts ...Option) ([]token.Token, error) {
	l := New(bytes.NewReader(input), opts...)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			r, _ := utf8.DecodeRuneInString(tok.Literal)
			return nil, &errors.LexError{Line: tok.Line, Char: r}
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// NextToken scans the input and returns the next token. Once the input is
// exhausted it keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipTrivia()
		tok := token.Token{Line: l.line}
		switch {
		case l.ch == -1:
			tok.Type = token.EOF
			return tok
		case isDigit(l.ch):
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			return tok
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		case l.ch == '"':
			tok.Type = token.STRING
			tok.Literal = l.readString()
			return tok
		}

		if next := l.peekRune(); next != 0 {
			two := string([]rune{l.ch, next})
			if typ, ok := token.TwoCharOperators[two]; ok {
				l.advance()
				l.advance()
				tok.Type = typ
				tok.Literal = two
				return tok
			}
		}
		if typ, ok := token.SingleCharOperators[l.ch]; ok {
			tok.Type = typ
			tok.Literal = string(l.ch)
			l.advance()
			return tok
		}

		ch := l.ch
		l.advance()
		if l.strict {
			tok.Type = token.ILLEGAL
			tok.Literal = string(ch)
			return tok
		}
		// Unclassified characters are dropped.
	}
}

func (l *Lexer) readRune() {
	r, _, err := l.r.ReadRune()
	if err != nil {
		l.ch = -1
		return
	}
	l.ch = r
}

func (l *Lexer) advance() {
	if l.ch == -1 {
		return
	}
	if l.ch == '\n' {
		l.line++
	}
	l.readRune()
}

// skipTrivia consumes whitespace and line comments.
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch != -1 && unicode.IsSpace(l.ch):
			l.advance()
		case l.ch == '/' && l.peekRune() == '/':
			for l.ch != '\n' && l.ch != -1 {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier() string {
	l.buf.Reset()
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

// readNumber consumes digits and dots. It does not check that the result is
// a well-formed number, so "1.2.3" is a single token.
func (l *Lexer) readNumber() string {
	l.buf.Reset()
	for isDigit(l.ch) || l.ch == '.' {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

// readString returns the unescaped contents of a string literal. An
// unterminated literal runs to the end of the input.
func (l *Lexer) readString() string {
	l.advance() // consume opening quote
	l.buf.Reset()
	for l.ch != '"' && l.ch != -1 {
		if l.ch == '\\' {
			l.advance()
			if l.ch == -1 {
				l.buf.WriteRune('\\')
				break
			}
			l.buf.WriteRune(unescape(l.ch))
		} else {
			l.buf.WriteRune(l.ch)
		}
		l.advance()
	}
	l.advance() // consume closing quote
	return l.buf.String()
}

func (l *Lexer) peekRune() rune {
	// Prioritize the returned slice, as Peek can return both bytes and an error
	bytes, _ := l.r.Peek(utf8.UTFMax)
	if len(bytes) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRune(bytes)
	return r
}

func isDigit(ch rune) bool {
	return ch != -1 && unicode.IsDigit(ch)
}

func isLetter(ch rune) bool {
	return ch != -1 && unicode.IsLetter(ch)
}

// unescape maps the character after a backslash to the character it denotes.
// Unknown escapes yield the character itself.
func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return ch
}
