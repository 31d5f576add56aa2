package lexer

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	TokenString TokenKind = iota
	TokenInteger
	TokenFloat
	TokenBool
	TokenNull
	TokenIdent
	TokenObjectOpen
	TokenObjectClose
	TokenArrayOpen
	TokenArrayClose
	TokenColon
	TokenComma
	TokenUnrecognized
)

var tokenKindNames = map[TokenKind]string{
	TokenString:       "string",
	TokenInteger:      "integer",
	TokenFloat:        "float",
	TokenBool:         "bool",
	TokenNull:         "null",
	TokenIdent:        "identifier",
	TokenObjectOpen:   "'{'",
	TokenObjectClose:  "'}'",
	TokenArrayOpen:    "'['",
	TokenArrayClose:   "']'",
	TokenColon:        "':'",
	TokenComma:        "','",
	TokenUnrecognized: "unrecognized character",
}

// String returns a human readable name for the kind.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Position locates the first character of a token.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, counted in runes
}

// Token is one lexical unit. Only the payload field matching Kind is set.
type Token struct {
	Kind  TokenKind
	Text  string // TokenString, TokenIdent
	Int   int32
	Float float32
	Bool  bool
	Char  rune // TokenUnrecognized
	Pos   Position
}

// String renders the token for diagnostics, e.g. `string "abc"` or `'}'`.
func (t Token) String() string {
	switch t.Kind {
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	case TokenIdent:
		return fmt.Sprintf("identifier %s", t.Text)
	case TokenInteger:
		return fmt.Sprintf("integer %d", t.Int)
	case TokenFloat:
		return "float " + strconv.FormatFloat(float64(t.Float), 'f', -1, 32)
	case TokenBool:
		return fmt.Sprintf("bool %t", t.Bool)
	case TokenUnrecognized:
		return fmt.Sprintf("%q", t.Char)
	default:
		return t.Kind.String()
	}
}
