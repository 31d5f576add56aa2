package formatter

import (
	"testing"

	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() models.ObjectValue {
	return models.ObjectValue{
		"b": models.ArrayValue{models.IntegerValue(1), models.FloatValue(2.5)},
		"a": models.ObjectValue{"c": models.BoolValue(true), "d": models.NullValue{}},
		"e": models.StringValue("x<y"),
	}
}

func formatterWith(mutate func(*config.Config)) *Formatter {
	cfg := config.NewConfig()
	mutate(cfg)
	return NewFormatterWithConfig(cfg)
}

func TestFormat_JSON(t *testing.T) {
	formatted, err := NewFormatter().Format(sampleDocument())
	require.NoError(t, err)

	expected := `{
  "a": {
    "c": true,
    "d": null
  },
  "b": [
    1,
    2.5
  ],
  "e": "x<y"
}
`
	assert.Equal(t, expected, formatted)
}

func TestFormat_JSONIndent(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Output.Indent = 4 })
	formatted, err := f.Format(models.ObjectValue{"a": models.ArrayValue{models.IntegerValue(1)}})
	require.NoError(t, err)

	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", formatted)
}

func TestFormat_Compact(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Output.Format = config.FormatCompact })
	formatted, err := f.Format(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, `{"a":{"c":true,"d":null},"b":[1,2.5],"e":"x<y"}`+"\n", formatted)
}

func TestFormat_ZeroIndentIsCompact(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Output.Indent = 0 })
	formatted, err := f.Format(models.ObjectValue{"a": models.IntegerValue(1)})
	require.NoError(t, err)

	assert.Equal(t, `{"a":1}`+"\n", formatted)
}

func TestFormat_EmptyContainers(t *testing.T) {
	formatted, err := NewFormatter().Format(models.ObjectValue{
		"list": models.ArrayValue{},
		"obj":  models.ObjectValue{},
	})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"list\": [],\n  \"obj\": {}\n}\n", formatted)
}

func TestFormat_FloatsKeepDecimalPoint(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Output.Format = config.FormatCompact })
	formatted, err := f.Format(models.ObjectValue{
		"whole": models.FloatValue(2),
		"frac":  models.FloatValue(12.3),
		"int":   models.IntegerValue(-7),
	})
	require.NoError(t, err)

	assert.Equal(t, `{"frac":12.3,"int":-7,"whole":2.0}`+"\n", formatted)
}

func TestFormat_EscapesStrings(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Output.Format = config.FormatCompact })
	formatted, err := f.Format(models.ObjectValue{`say "hi"`: models.StringValue("tab\there & é")})
	require.NoError(t, err)

	assert.Equal(t, `{"say \"hi\"":"tab\there & é"}`+"\n", formatted)
}

func TestFormat_Tree(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Output.Format = config.FormatTree })
	formatted, err := f.Format(models.ObjectValue{
		"name":   models.StringValue("Mr. John"),
		"age":    models.IntegerValue(25),
		"cars":   models.ArrayValue{models.StringValue("ferrari")},
		"others": models.ObjectValue{},
		"ratio":  models.FloatValue(2),
		"gone":   models.NullValue{},
		"ok":     models.BoolValue(true),
	})
	require.NoError(t, err)

	expected := `(object, 7 keys)
  age: (integer) 25
  cars: (array, 1 item)
    0: (string) "ferrari"
  gone: (null)
  name: (string) "Mr. John"
  ok: (bool) true
  others: (object, 0 keys)
  ratio: (float) 2.0
`
	assert.Equal(t, expected, formatted)
}

func TestFormat_KeyCase(t *testing.T) {
	f := formatterWith(func(c *config.Config) {
		c.Output.Format = config.FormatCompact
		c.Naming.KeyCase = config.KeyCaseSnake
		c.Naming.KeyMappings["ID"] = "identifier"
	})
	formatted, err := f.Format(models.ObjectValue{
		"requestsPerSecond": models.IntegerValue(100),
		"ID":                models.IntegerValue(1),
		"nested":            models.ArrayValue{models.ObjectValue{"burstSize": models.IntegerValue(150)}},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"identifier":1,"nested":[{"burst_size":150}],"requests_per_second":100}`+"\n", formatted)
}

func TestFormat_KeyCaseCollisionLastSortedWins(t *testing.T) {
	f := formatterWith(func(c *config.Config) {
		c.Output.Format = config.FormatCompact
		c.Naming.KeyCase = config.KeyCaseSnake
	})
	// "foo_bar" sorts after "fooBar"; both become "foo_bar".
	formatted, err := f.Format(models.ObjectValue{
		"foo_bar": models.IntegerValue(1),
		"fooBar":  models.IntegerValue(2),
	})
	require.NoError(t, err)

	assert.Equal(t, `{"foo_bar":1}`+"\n", formatted)
}

func TestFormat_RenameDoesNotMutateInput(t *testing.T) {
	f := formatterWith(func(c *config.Config) { c.Naming.KeyCase = config.KeyCaseSnake })
	doc := models.ObjectValue{"fooBar": models.IntegerValue(1)}

	_, err := f.Format(doc)
	require.NoError(t, err)

	assert.Equal(t, models.ObjectValue{"fooBar": models.IntegerValue(1)}, doc)
}

func TestFormat_Errors(t *testing.T) {
	_, err := NewFormatter().Format(nil)
	assert.Error(t, err)

	f := formatterWith(func(c *config.Config) { c.Output.Format = config.FormatTokens })
	_, err = f.Format(models.ObjectValue{})
	assert.Error(t, err)
}

func TestFormatTokens(t *testing.T) {
	tokens, err := lexer.New("{\n  name: \"x\",\n  n: 1.5 }").All()
	require.NoError(t, err)

	expected := `1:1	'{'
2:3	identifier name
2:7	':'
2:9	string "x"
2:12	','
3:3	identifier n
3:4	':'
3:6	float 1.5
3:10	'}'
`
	assert.Equal(t, expected, NewFormatter().FormatTokens(tokens))
}
