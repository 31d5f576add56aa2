package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonlex/internal/parser"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatCompact = "compact"
	FormatTree    = "tree"
	FormatTokens  = "tokens"
)

// Key cases understood by naming.key_case
const (
	KeyCaseNone       = ""
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower-camel"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for jsonlex
type Config struct {
	Parser ParserConfig `yaml:"parser" toml:"parser"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Naming NamingConfig `yaml:"naming" toml:"naming"`
	Dev    DevConfig    `yaml:"dev" toml:"dev"`
}

// ParserConfig controls parsing limits
type ParserConfig struct {
	// MaxDepth bounds container nesting; 0 disables the check.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

// OutputConfig controls how a parsed document is rendered
type OutputConfig struct {
	Format string `yaml:"format" toml:"format"`
	Indent int    `yaml:"indent" toml:"indent"`
}

// NamingConfig controls rewriting of object keys on output
type NamingConfig struct {
	KeyCase     string            `yaml:"key_case" toml:"key_case"`
	KeyMappings map[string]string `yaml:"key_mappings" toml:"key_mappings"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxDepth: parser.DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Indent: 2,
		},
		Naming: NamingConfig{
			KeyCase:     KeyCaseNone,
			KeyMappings: make(map[string]string),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if cfg.Naming.KeyMappings == nil {
		cfg.Naming.KeyMappings = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonlex.yml", ".jsonlex.yaml", ".jsonlex.toml", "jsonlex.yml", "jsonlex.yaml", "jsonlex.toml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every option holds a supported value
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatCompact, FormatTree, FormatTokens:
	default:
		return fmt.Errorf("unknown output format '%s'", c.Output.Format)
	}

	switch c.Naming.KeyCase {
	case KeyCaseNone, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	default:
		return fmt.Errorf("unknown key case '%s'", c.Naming.KeyCase)
	}

	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative, got %d", c.Output.Indent)
	}

	return nil
}

// GetKeyName returns the output name for a document key, applying naming rules
func (c *Config) GetKeyName(key string) string {
	// Check custom mappings first
	if mapped, exists := c.Naming.KeyMappings[key]; exists {
		return mapped
	}

	switch c.Naming.KeyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		// Return original key
		return key
	}
}

// RenamesKeys reports whether GetKeyName can return something other than its input
func (c *Config) RenamesKeys() bool {
	return c.Naming.KeyCase != KeyCaseNone || len(c.Naming.KeyMappings) > 0
}

// CLIOverrides carries flag values; zero values mean "not set on the command line"
type CLIOverrides struct {
	Format   string
	Indent   *int
	MaxDepth *int
	KeyCase  string
	Debug    bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}
	if cli.Indent != nil {
		cfg.Output.Indent = *cli.Indent
	}
	if cli.MaxDepth != nil {
		cfg.Parser.MaxDepth = *cli.MaxDepth
	}
	if cli.KeyCase != "" {
		cfg.Naming.KeyCase = cli.KeyCase
	}
	// A debug flag can only switch debugging on
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
