// Package lexer turns a document into a lazy stream of tokens.
package lexer

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/jsonlex/internal/errors"
)

// Lexer produces tokens on demand from an in-memory document. It is
// forward-only; to lex the same input again construct a new Lexer.
type Lexer struct {
	input string

	// offset is the byte offset of the next unconsumed rune. Everything
	// before it has been emitted as part of a token or skipped.
	offset int
	line   int
	column int
}

// New creates a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{input: src, line: 1, column: 1}
}

// Pos returns the position of the next unconsumed character.
func (l *Lexer) Pos() Position {
	return Position{Offset: l.offset, Line: l.line, Column: l.column}
}

func (l *Lexer) peek() (rune, bool) {
	if l.offset >= len(l.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r, true
}

func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += w
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		r, ok := l.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

// Next returns the next token. It returns io.EOF exactly when the input is
// exhausted. Any other error is a *errors.ParseError and is fatal.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	pos := l.Pos()
	r, ok := l.peek()
	if !ok {
		return Token{}, io.EOF
	}

	switch {
	case r == '{':
		l.advance()
		return Token{Kind: TokenObjectOpen, Pos: pos}, nil
	case r == '}':
		l.advance()
		return Token{Kind: TokenObjectClose, Pos: pos}, nil
	case r == '[':
		l.advance()
		return Token{Kind: TokenArrayOpen, Pos: pos}, nil
	case r == ']':
		l.advance()
		return Token{Kind: TokenArrayClose, Pos: pos}, nil
	case r == ':':
		l.advance()
		return Token{Kind: TokenColon, Pos: pos}, nil
	case r == ',':
		l.advance()
		return Token{Kind: TokenComma, Pos: pos}, nil
	case r == '"':
		return l.lexString(pos)
	case unicode.IsLetter(r):
		return l.lexWord(pos), nil
	case isDigit(r):
		return l.lexNumber(pos)
	default:
		l.advance()
		return Token{Kind: TokenUnrecognized, Char: r, Pos: pos}, nil
	}
}

// All drains the lexer and returns every remaining token.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// lexString reads a quoted literal verbatim; escapes are not interpreted.
func (l *Lexer) lexString(pos Position) (Token, error) {
	l.advance() // opening quote
	start := l.offset
	for {
		r, ok := l.peek()
		if !ok {
			end := l.Pos()
			return Token{}, errors.NewUnexpectedEOF('"', end.Line, end.Column, end.Offset)
		}
		if r == '"' {
			text := l.input[start:l.offset]
			l.advance()
			return Token{Kind: TokenString, Text: text, Pos: pos}, nil
		}
		l.advance()
	}
}

func (l *Lexer) lexWord(pos Position) Token {
	start := l.offset
	for {
		r, ok := l.peek()
		if !ok || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		l.advance()
	}

	word := l.input[start:l.offset]
	switch word {
	case "true":
		return Token{Kind: TokenBool, Bool: true, Pos: pos}
	case "false":
		return Token{Kind: TokenBool, Bool: false, Pos: pos}
	case "null":
		return Token{Kind: TokenNull, Pos: pos}
	default:
		return Token{Kind: TokenIdent, Text: word, Pos: pos}
	}
}

// lexNumber reads digits and dots. Signs and exponents are not part of the
// grammar, so "-1" lexes as an unrecognized '-' followed by 1.
func (l *Lexer) lexNumber(pos Position) (Token, error) {
	start := l.offset
	for {
		r, ok := l.peek()
		if !ok || !(isDigit(r) || r == '.') {
			break
		}
		l.advance()
	}

	text := l.input[start:l.offset]
	if strings.ContainsRune(text, '.') {
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return Token{}, errors.NewInvalidNumber(text, pos.Line, pos.Column, pos.Offset)
		}
		return Token{Kind: TokenFloat, Float: float32(f), Pos: pos}, nil
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Token{}, errors.NewInvalidNumber(text, pos.Line, pos.Column, pos.Offset)
	}
	return Token{Kind: TokenInteger, Int: int32(n), Pos: pos}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
