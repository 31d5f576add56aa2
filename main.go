package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/errors"
	"github.com/mcncl/jsonlex/internal/formatter"
	"github.com/mcncl/jsonlex/internal/lexer"
	"github.com/mcncl/jsonlex/internal/models"
	"github.com/mcncl/jsonlex/internal/parser"
	"github.com/sirupsen/logrus"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to a YAML or TOML config file. Defaults to the nearest .jsonlex.{yml,yaml,toml}." short:"c" type:"path"`
	Format      string `help:"Output format: json, compact, tree or tokens." short:"f"`
	Indent      *int   `help:"Indent width for json output."`
	MaxDepth    *int   `help:"Maximum nesting depth (0 disables the limit)." name:"max-depth"`
	KeyCase     string `help:"Rewrite object keys on output: snake, camel, lower-camel or kebab." short:"k" name:"key-case"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct document input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Log    *logrus.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cli := kong.Must(&CLI,
		kong.Name("jsonlex"),
		kong.Description("Parse JSON-like documents with unquoted keys and trailing commas"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cli.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonlex version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonlex --help\n")

		os.Exit(1)
	}
}

// newContext resolves configuration and sets up logging
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		Format:   CLI.Format,
		Indent:   CLI.Indent,
		MaxDepth: CLI.MaxDepth,
		KeyCase:  CLI.KeyCase,
		Debug:    CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration '%s'", configPath), err)
	}

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Log:    newLogger(cfg.Dev.Debug),
	}
	if configPath != "" {
		ctx.Log.WithField("path", configPath).Debug("loaded configuration")
	}
	return ctx, nil
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// run executes the main program logic
func run(ctx *Context) error {
	log := ctx.Log
	if log == nil {
		log = newLogger(ctx.Debug)
	}

	formatterInst := formatter.NewFormatterWithConfig(ctx.Config)

	// 1a. Token dump skips parsing entirely
	if ctx.Config.Output.Format == config.FormatTokens {
		document, err := readInput()
		if err != nil {
			// Error is already wrapped by readInput
			return err
		}
		log.WithField("bytes", len(document)).Debug("read input")

		tokens, err := lexer.New(document).All()
		if err != nil {
			return errors.NewParsingError("failed to tokenize document", err)
		}
		log.WithField("tokens", len(tokens)).Debug("tokenized input")
		return writeOutput(formatterInst.FormatTokens(tokens))
	}

	// 1b. Parse the document
	root, err := parseInput(parser.WithMaxDepth(ctx.Config.Parser.MaxDepth))
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"keys":      len(root),
		"max_depth": ctx.Config.Parser.MaxDepth,
	}).Debug("parsed document")

	// 2. Render it
	out, err := formatterInst.Format(root)
	if err != nil {
		return errors.NewFormatError("failed to render document", err)
	}
	log.WithFields(logrus.Fields{
		"format":   ctx.Config.Output.Format,
		"key_case": ctx.Config.Naming.KeyCase,
	}).Debug("rendered document")

	// 3. Output the result
	return writeOutput(out)
}

// parseInput parses the document from file or stdin
func parseInput(opts ...parser.Option) (models.ObjectValue, error) {
	if CLI.Input != "" {
		// Parse from file
		return parser.ParseFile(CLI.Input, opts...)
	}

	piped, err := stdinPiped()
	if err != nil {
		return nil, err
	}
	if !piped {
		document, err := readInteractiveInput()
		if err != nil {
			return nil, err
		}
		return parser.ParseString(document, opts...)
	}

	return parser.Parse(os.Stdin, opts...)
}

// readInput reads the raw document from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		return parser.ReadFile(CLI.Input)
	}

	piped, err := stdinPiped()
	if err != nil {
		return "", err
	}
	if !piped {
		return readInteractiveInput()
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(data), nil
}

// stdinPiped reports whether stdin carries piped data. A terminal is only
// accepted in interactive mode.
func stdinPiped() (bool, error) {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return false, nil
		}
		// No data provided on stdin and not in interactive mode
		return false, errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	return true, nil
}

// writeOutput writes the rendered result to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(out), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Print(out)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// document and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonlex Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your document below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var docBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		docBuilder.WriteString(line)
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	document := docBuilder.String()
	if strings.TrimSpace(document) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing document...")
	return document, nil
}
