package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
)

// Formatter renders parsed documents and token streams as text
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter instance with default settings
func NewFormatter() *Formatter {
	return &Formatter{config: config.NewConfig()}
}

// NewFormatterWithConfig creates a new Formatter instance with custom configuration
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// Format renders a document in the configured output format. Keys are
// emitted in sorted order so output is stable across runs.
func (f *Formatter) Format(root models.ObjectValue) (string, error) {
	if root == nil {
		return "", fmt.Errorf("cannot format a nil document")
	}

	var doc models.Value = root
	if f.config.RenamesKeys() {
		doc = f.renameKeys(root)
	}

	var buf bytes.Buffer
	switch f.config.Output.Format {
	case config.FormatJSON:
		if err := writeJSON(&buf, doc, strings.Repeat(" ", f.config.Output.Indent), 0); err != nil {
			return "", err
		}
	case config.FormatCompact:
		if err := writeJSON(&buf, doc, "", 0); err != nil {
			return "", err
		}
	case config.FormatTree:
		writeTree(&buf, "", doc, 0)
	default:
		return "", fmt.Errorf("output format '%s' does not render documents", f.config.Output.Format)
	}
	buf.WriteString("\n")

	return buf.String(), nil
}

// FormatTokens renders one token per line, prefixed by its line and column
func (f *Formatter) FormatTokens(tokens []lexer.Token) string {
	var buf bytes.Buffer
	for _, tok := range tokens {
		fmt.Fprintf(&buf, "%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
	}
	return buf.String()
}

// renameKeys applies the naming rules to every object in the tree. Keys are
// visited in sorted order, so when two keys map to the same name the one
// that sorts last wins.
func (f *Formatter) renameKeys(v models.Value) models.Value {
	switch val := v.(type) {
	case models.ObjectValue:
		renamed := make(models.ObjectValue, len(val))
		for _, key := range val.Keys() {
			renamed[f.config.GetKeyName(key)] = f.renameKeys(val[key])
		}
		return renamed
	case models.ArrayValue:
		renamed := make(models.ArrayValue, len(val))
		for i, elem := range val {
			renamed[i] = f.renameKeys(elem)
		}
		return renamed
	default:
		return v
	}
}

// writeJSON emits standard JSON. An empty indent produces compact output.
func writeJSON(buf *bytes.Buffer, v models.Value, indent string, level int) error {
	newline := func(level int) {
		if indent == "" {
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, level))
	}

	switch val := v.(type) {
	case models.ObjectValue:
		if len(val) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range val.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(level + 1)
			if err := writeQuoted(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := writeJSON(buf, val[key], indent, level+1); err != nil {
				return err
			}
		}
		newline(level)
		buf.WriteByte('}')
	case models.ArrayValue:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(level + 1)
			if err := writeJSON(buf, elem, indent, level+1); err != nil {
				return err
			}
		}
		newline(level)
		buf.WriteByte(']')
	default:
		return writeScalar(buf, v)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, v models.Value) error {
	switch val := v.(type) {
	case models.StringValue:
		return writeQuoted(buf, string(val))
	case models.IntegerValue:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case models.FloatValue:
		buf.WriteString(formatFloat(val))
	case models.BoolValue:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case models.NullValue:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

// formatFloat keeps a decimal point so floats stay floats when re-parsed.
func formatFloat(f models.FloatValue) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func writeQuoted(buf *bytes.Buffer, s string) error {
	var quoted bytes.Buffer
	enc := json.NewEncoder(&quoted)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to quote string: %w", err)
	}
	buf.Write(bytes.TrimSuffix(quoted.Bytes(), []byte("\n")))
	return nil
}

// writeTree emits an indented outline with the variant of every node.
func writeTree(buf *bytes.Buffer, label string, v models.Value, level int) {
	buf.WriteString(strings.Repeat("  ", level))
	if label != "" {
		buf.WriteString(label)
		buf.WriteString(": ")
	}

	switch val := v.(type) {
	case models.ObjectValue:
		fmt.Fprintf(buf, "(object, %d %s)", len(val), plural(len(val), "key", "keys"))
		for _, key := range val.Keys() {
			buf.WriteByte('\n')
			writeTree(buf, key, val[key], level+1)
		}
	case models.ArrayValue:
		fmt.Fprintf(buf, "(array, %d %s)", len(val), plural(len(val), "item", "items"))
		for i, elem := range val {
			buf.WriteByte('\n')
			writeTree(buf, strconv.Itoa(i), elem, level+1)
		}
	case models.StringValue:
		fmt.Fprintf(buf, "(string) %q", string(val))
	case models.FloatValue:
		fmt.Fprintf(buf, "(float) %s", formatFloat(val))
	case models.NullValue:
		buf.WriteString("(null)")
	default:
		fmt.Fprintf(buf, "(%s) %v", v.Kind(), v)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
