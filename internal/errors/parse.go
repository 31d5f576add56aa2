package errors

import (
	"fmt"
	"strings"
)

// ParseErrorKind classifies why a document failed to parse
type ParseErrorKind string

const (
	KindUnexpectedEndOfInput ParseErrorKind = "unexpected end of input"
	KindUnexpectedToken      ParseErrorKind = "unexpected token"
	KindExpectedCharacter    ParseErrorKind = "expected character"
	KindInvalidNumber        ParseErrorKind = "invalid number"
	KindMaxDepthExceeded     ParseErrorKind = "maximum nesting depth exceeded"
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrUnexpectedEndOfInput = &ParseError{Kind: KindUnexpectedEndOfInput}
	ErrUnexpectedToken      = &ParseError{Kind: KindUnexpectedToken}
	ErrExpectedCharacter    = &ParseError{Kind: KindExpectedCharacter}
	ErrInvalidNumber        = &ParseError{Kind: KindInvalidNumber}
	ErrMaxDepthExceeded     = &ParseError{Kind: KindMaxDepthExceeded}
)

// ParseError describes the first lexical or grammatical failure in a document.
// Line and Column are 1-based; Offset is a byte offset into the input.
type ParseError struct {
	Kind ParseErrorKind
	// Found describes the offending token or literal text, if any.
	Found string
	// Expected is the character the parser was looking for, if any.
	Expected rune
	Line     int
	Column   int
	Offset   int
}

// Error implements error interface
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Expected != 0 {
		fmt.Fprintf(&b, " %q", e.Expected)
	}
	if e.Found != "" {
		fmt.Fprintf(&b, ", found %s", e.Found)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d, column %d", e.Line, e.Column)
	}
	return b.String()
}

// Is implements errors.Is for comparison
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewUnexpectedEOF reports input that ended while expected was still required.
// expected may be zero when any of several tokens would have been acceptable.
func NewUnexpectedEOF(expected rune, line, column, offset int) *ParseError {
	return &ParseError{
		Kind:     KindUnexpectedEndOfInput,
		Expected: expected,
		Line:     line,
		Column:   column,
		Offset:   offset,
	}
}

// NewUnexpectedToken reports a token the grammar does not allow at its position
func NewUnexpectedToken(found string, line, column, offset int) *ParseError {
	return &ParseError{
		Kind:   KindUnexpectedToken,
		Found:  found,
		Line:   line,
		Column: column,
		Offset: offset,
	}
}

// NewExpectedCharacter reports a missing punctuation character such as ':'
func NewExpectedCharacter(expected rune, found string, line, column, offset int) *ParseError {
	return &ParseError{
		Kind:     KindExpectedCharacter,
		Expected: expected,
		Found:    found,
		Line:     line,
		Column:   column,
		Offset:   offset,
	}
}

// NewInvalidNumber reports numeric text that does not fit an int32 or float32
func NewInvalidNumber(text string, line, column, offset int) *ParseError {
	return &ParseError{
		Kind:   KindInvalidNumber,
		Found:  fmt.Sprintf("%q", text),
		Line:   line,
		Column: column,
		Offset: offset,
	}
}

// NewMaxDepthExceeded reports nesting deeper than the configured bound
func NewMaxDepthExceeded(limit, line, column, offset int) *ParseError {
	return &ParseError{
		Kind:   KindMaxDepthExceeded,
		Found:  fmt.Sprintf("depth %d", limit+1),
		Line:   line,
		Column: column,
		Offset: offset,
	}
}
