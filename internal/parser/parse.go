package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonlex/internal/errors"
	"github.com/mcncl/jsonlex/internal/models"
)

// Parse reads a whole document from reader and parses it. Unlike
// (*Parser).Parse it rejects anything but whitespace after the root object.
func Parse(reader io.Reader, opts ...Option) (models.ObjectValue, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data), opts...)
}

// ParseString parses a document held in a string
func ParseString(document string, opts ...Option) (models.ObjectValue, error) {
	if strings.TrimSpace(document) == "" {
		return nil, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}

	p := New(document, opts...)
	root, err := p.Parse()
	if err != nil {
		return nil, wrapParseError(err)
	}

	// Only whitespace may follow the root object
	tok, ok, err := p.Rest()
	if err != nil {
		return nil, wrapParseError(err)
	}
	if ok {
		return nil, errors.NewParsingError(
			"unexpected data after the root object",
			errors.NewUnexpectedToken(tok.String(), tok.Pos.Line, tok.Pos.Column, tok.Pos.Offset),
		)
	}

	return root, nil
}

// ParseFile parses a document from a file path
func ParseFile(filePath string, opts ...Option) (models.ObjectValue, error) {
	document, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseString(document, opts...)
}

// ReadFile loads a document without parsing it. Missing and empty files are
// reported as input errors.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	// Check for empty file before reading
	stat, err := file.Stat()
	if err != nil {
		return "", errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	return string(data), nil
}

func wrapParseError(err error) error {
	return errors.NewParsingError("failed to parse document", err)
}
