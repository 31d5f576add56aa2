package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEnd_ComplexNestedStructures tests the application with complex nested documents
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	// Create a temporary directory for test files
	tempDir, err := os.MkdirTemp("", "jsonlex-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Standard JSON is a subset of the accepted grammar
	jsonContent := `{
		"id": 12345,
		"uuid": "550e8400-e29b-41d4-a716-446655440000",
		"updated_at": null,
		"config": {
			"enabled": true,
			"timeout_seconds": 30,
			"features": ["logging", "metrics", "alerting"],
			"rate_limits": {
				"per_second": 100,
				"burst": 150
			},
			"environments": {
				"development": {"debug": true, "log_level": "debug"},
				"production": {"debug": false, "log_level": "info"}
			}
		},
		"users": [
			{"id": 1, "name": "Alice", "roles": ["admin", "user"]},
			{"id": 2, "name": "Bob", "roles": ["user"]}
		],
		"stats": {
			"requests": 1234567,
			"success_rate": 0.75,
			"response_times": [0.5, 0.25, 0.125]
		},
		"active": true
	}`

	jsonFile := filepath.Join(tempDir, "complex.json")
	err = os.WriteFile(jsonFile, []byte(jsonContent), 0644)
	require.NoError(t, err)

	outputFile := filepath.Join(tempDir, "complex_output.json")

	// Run the CLI command
	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	rendered, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	// The rendered document must be standard JSON equal to the input
	var want, got interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonContent), &want))
	require.NoError(t, json.Unmarshal(rendered, &got), "output is not valid JSON:\n%s", rendered)
	assert.Equal(t, want, got)
}

// TestEndToEnd_RelaxedSyntax tests unquoted keys and trailing commas end to end
func TestEndToEnd_RelaxedSyntax(t *testing.T) {
	document := `
{
    name: "Mr. Json",
    "age": 19,
    cars: ["bugatti", 3,],
    vers: 12.5,
    oth: {
        okay: true,
        not_: null,
    },
}
`
	cmd := exec.Command("go", "run", "../../main.go", "-f", "compact")
	cmd.Stdin = strings.NewReader(document)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	assert.Equal(t, `{"age":19,"cars":["bugatti",3],"name":"Mr. Json","oth":{"not_":null,"okay":true},"vers":12.5}`+"\n", stdout.String())
}

// TestEndToEnd_GeneratedDocuments feeds documents produced by encoding/json through the CLI
func TestEndToEnd_GeneratedDocuments(t *testing.T) {
	tempDir := t.TempDir()

	docs := map[string]interface{}{
		"wide":   generateWideJSON(200),
		"nested": generateNestedJSON(4, 3),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			jsonData, err := json.MarshalIndent(doc, "", "  ")
			require.NoError(t, err)

			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", name))
			require.NoError(t, os.WriteFile(jsonFile, jsonData, 0644))

			cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-f", "compact")
			var stdout bytes.Buffer
			cmd.Stdout = &stdout
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err = cmd.Run()
			require.NoError(t, err, "CLI command failed: %s", stderr.String())

			var want, got interface{}
			require.NoError(t, json.Unmarshal(jsonData, &want))
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
			assert.Equal(t, want, got)
		})
	}
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	// Test cases
	testCases := []struct {
		name     string
		document string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyObject",
			document: `{}`,
			expected: "{}\n",
		},
		{
			name:     "TrailingCommaObject",
			document: `{"a": 1,}`,
			expected: "{\"a\":1}\n",
		},
		{
			name:     "TrailingCommaArray",
			document: `{"a": [1, 2,]}`,
			expected: "{\"a\":[1,2]}\n",
		},
		{
			name:     "DuplicateKeys",
			document: `{"a": 1, a: 2}`,
			expected: "{\"a\":2}\n",
		},
		{
			name:     "DeeplyNestedObject",
			document: `{"level1":{"level2":{"level3":{"level4":{"level5":{"value":42}}}}}}`,
			expected: `{"level1":{"level2":{"level3":{"level4":{"level5":{"value":42}}}}}}` + "\n",
		},
		{
			name:     "DeeplyNestedArray",
			document: `{a: [[[[[[42]]]]]]}`,
			expected: `{"a":[[[[[[42]]]]]]}` + "\n",
		},
		{
			name:     "EmptyArray",
			document: `[]`,
			isError:  true,
		},
		{
			name:     "SingleValue",
			document: `"just a string"`,
			isError:  true,
		},
		{
			name:     "UnterminatedString",
			document: `{"name": "abc`,
			isError:  true,
		},
		{
			name:     "PrematureEnd",
			document: `{"a":`,
			isError:  true,
		},
		{
			name:     "NegativeNumber",
			document: `{"a": -1}`,
			isError:  true,
		},
		{
			name:     "Exponent",
			document: `{"a": 1e5}`,
			isError:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Run the CLI command
			cmd := exec.Command("go", "run", "../../main.go", "-f", "compact")
			cmd.Stdin = strings.NewReader(tc.document)
			var stdout bytes.Buffer
			cmd.Stdout = &stdout
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				assert.Contains(t, stderr.String(), "Parse error")
				assert.Empty(t, stdout.String())
			} else {
				require.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr.String())
				assert.Equal(t, tc.expected, stdout.String())
			}
		})
	}
}
