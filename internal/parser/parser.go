package parser

import (
	"io"

	"github.com/mcncl/jsonlex/internal/errors"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
)

// DefaultMaxDepth bounds container nesting unless overridden with WithMaxDepth.
const DefaultMaxDepth = 512

// Option configures a Parser
type Option func(*Parser)

// WithMaxDepth limits how deeply objects and arrays may nest. The root object
// is depth 1. Zero or a negative value disables the check.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser is a recursive-descent parser over a token stream. Nesting is
// tracked by the call stack, so a Parser holds nothing beyond its lexer.
//
// Grammar:
//
//	document := object
//	object   := '{' (pair (',' pair)*)? ','? '}'
//	pair     := key ':' value
//	key      := Identifier | StringLiteral
//	value    := StringLiteral | IntegerLiteral | FloatLiteral | BoolLiteral | Null | array | object
//	array    := '[' (value (',' value)*)? ','? ']'
type Parser struct {
	lex      *lexer.Lexer
	maxDepth int
}

// New creates a parser over src.
func New(src string, opts ...Option) *Parser {
	p := &Parser{
		lex:      lexer.New(src),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads exactly one object from the input. Input after the closing
// brace is left unread. The returned error is always a *errors.ParseError.
func (p *Parser) Parse() (models.ObjectValue, error) {
	tok, err := p.expectToken(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind != lexer.TokenObjectOpen {
		return nil, unexpected(tok)
	}
	return p.parseObject(tok, 1)
}

// Rest reports the first token after the parsed document, if any.
func (p *Parser) Rest() (lexer.Token, bool, error) {
	tok, err := p.lex.Next()
	if err == io.EOF {
		return lexer.Token{}, false, nil
	}
	if err != nil {
		return lexer.Token{}, false, err
	}
	return tok, true, nil
}

// parseObject parses the members of an object whose '{' is open.
func (p *Parser) parseObject(open lexer.Token, depth int) (models.ObjectValue, error) {
	if err := p.checkDepth(open, depth); err != nil {
		return nil, err
	}

	obj := make(models.ObjectValue)

	tok, err := p.expectToken(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind == lexer.TokenObjectClose {
		return obj, nil
	}

	for {
		if tok.Kind != lexer.TokenIdent && tok.Kind != lexer.TokenString {
			return nil, unexpected(tok)
		}
		key := tok.Text

		colon, err := p.expectToken(':')
		if err != nil {
			return nil, err
		}
		if colon.Kind != lexer.TokenColon {
			return nil, errors.NewExpectedCharacter(':', colon.String(), colon.Pos.Line, colon.Pos.Column, colon.Pos.Offset)
		}

		first, err := p.expectToken(0)
		if err != nil {
			return nil, err
		}
		value, err := p.parseValue(first, depth)
		if err != nil {
			return nil, err
		}
		// Duplicate keys: last write wins.
		obj[key] = value

		sep, err := p.expectToken('}')
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case lexer.TokenObjectClose:
			return obj, nil
		case lexer.TokenComma:
		default:
			return nil, unexpected(sep)
		}

		// A comma may be followed by the closing brace.
		tok, err = p.expectToken('}')
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.TokenObjectClose {
			return obj, nil
		}
	}
}

// parseArray parses the elements of an array whose '[' is open.
func (p *Parser) parseArray(open lexer.Token, depth int) (models.ArrayValue, error) {
	if err := p.checkDepth(open, depth); err != nil {
		return nil, err
	}

	arr := models.ArrayValue{}

	tok, err := p.expectToken(']')
	if err != nil {
		return nil, err
	}
	if tok.Kind == lexer.TokenArrayClose {
		return arr, nil
	}

	for {
		value, err := p.parseValue(tok, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)

		sep, err := p.expectToken(']')
		if err != nil {
			return nil, err
		}
		switch sep.Kind {
		case lexer.TokenArrayClose:
			return arr, nil
		case lexer.TokenComma:
		default:
			return nil, unexpected(sep)
		}

		tok, err = p.expectToken(']')
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.TokenArrayClose {
			return arr, nil
		}
	}
}

// parseValue builds the value that starts with tok. depth is the depth of
// the enclosing container.
func (p *Parser) parseValue(tok lexer.Token, depth int) (models.Value, error) {
	switch tok.Kind {
	case lexer.TokenString:
		return models.StringValue(tok.Text), nil
	case lexer.TokenInteger:
		return models.IntegerValue(tok.Int), nil
	case lexer.TokenFloat:
		return models.FloatValue(tok.Float), nil
	case lexer.TokenBool:
		return models.BoolValue(tok.Bool), nil
	case lexer.TokenNull:
		return models.NullValue{}, nil
	case lexer.TokenArrayOpen:
		return p.parseArray(tok, depth+1)
	case lexer.TokenObjectOpen:
		return p.parseObject(tok, depth+1)
	default:
		return nil, unexpected(tok)
	}
}

// expectToken reads the next token, turning end of input into an
// UnexpectedEndOfInput error that names want (zero if several would do).
func (p *Parser) expectToken(want rune) (lexer.Token, error) {
	tok, err := p.lex.Next()
	if err == io.EOF {
		pos := p.lex.Pos()
		return lexer.Token{}, errors.NewUnexpectedEOF(want, pos.Line, pos.Column, pos.Offset)
	}
	return tok, err
}

func (p *Parser) checkDepth(open lexer.Token, depth int) error {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return errors.NewMaxDepthExceeded(p.maxDepth, open.Pos.Line, open.Pos.Column, open.Pos.Offset)
	}
	return nil
}

func unexpected(tok lexer.Token) *errors.ParseError {
	return errors.NewUnexpectedToken(tok.String(), tok.Pos.Line, tok.Pos.Column, tok.Pos.Offset)
}
