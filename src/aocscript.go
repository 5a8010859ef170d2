package aocscript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phroun/aocscript/src/pkg/console"
)

// Interpreter runs AoC scripts. It owns one Environment and one parse-time
// SymbolTable, so successive Run calls behave like one long script.
type Interpreter struct {
	config   *Config
	logger   *Logger
	console  *console.Console
	env      *Environment
	symbols  *SymbolTable
	executor *Executor
}

// New creates an interpreter. A nil config uses DefaultConfig.
func New(config *Config) *Interpreter {
	config = config.withDefaults()

	logger := NewLoggerWithWriters(config.Debug, config.Stdout, config.Stderr)
	logger.SetContextLines(config.ContextLines)
	if config.Debug {
		if len(config.DebugCategories) == 0 {
			logger.EnableAllCategories()
		}
		for _, cat := range config.DebugCategories {
			logger.EnableCategory(cat)
		}
	}

	out := console.New(config.Stdout, console.SupportsColor(config.Stdout))
	switch config.Color {
	case ColorAlways:
		out.SetEnabled(true)
		logger.SetColorEnabled(true)
	case ColorNever:
		out.SetEnabled(false)
		logger.SetColorEnabled(false)
	}

	in := &Interpreter{
		config:  config,
		logger:  logger,
		console: out,
	}
	in.Reset()
	return in
}

// Reset discards all variables, lists, declarations and loaded input
func (in *Interpreter) Reset() {
	in.env = NewEnvironment()
	in.symbols = NewSymbolTable()
	in.executor = NewExecutor(in.env, in.console, in.logger, in.config)
}

// Config returns the interpreter configuration
func (in *Interpreter) Config() *Config {
	return in.config
}

// Logger returns the diagnostic logger
func (in *Interpreter) Logger() *Logger {
	return in.logger
}

// Environment returns the runtime state
func (in *Interpreter) Environment() *Environment {
	return in.env
}

// Parse lexes and parses source against the interpreter's declarations
// without running it. Declarations made by source are remembered only when
// the whole source parses.
func (in *Interpreter) Parse(source, filename string) (*Program, error) {
	symbols := in.symbols.Clone()
	program, err := in.parseWith(source, filename, symbols)
	if err != nil {
		return nil, err
	}
	in.symbols = symbols
	return program, nil
}

func (in *Interpreter) parseWith(source, filename string, symbols *SymbolTable) (*Program, error) {
	lex, err := NewLexer(source, filename)
	if err != nil {
		return nil, err
	}
	lex.SetLogger(in.logger)
	parser := NewParser(lex, symbols)
	parser.SetLogger(in.logger)
	return parser.Parse()
}

// NeedsMoreInput reports whether source stops in the middle of a statement,
// such as an if or loop body that has not been closed yet
func (in *Interpreter) NeedsMoreInput(source string) bool {
	lex, err := NewLexer(source, "")
	if err == nil {
		_, err = NewParser(lex, in.symbols.Clone()).Parse()
	}
	var syntaxErr *SyntaxError
	return errors.As(err, &syntaxErr) && syntaxErr.AtEnd
}

// Run parses and executes source. Nothing runs when parsing fails; a
// runtime error stops execution at the failing statement.
func (in *Interpreter) Run(source, filename string) error {
	program, err := in.Parse(source, filename)
	if err != nil {
		return err
	}
	in.logger.DebugCat(CatSystem, "running %s (%d statements)", displayName(filename), len(program.Statements))
	return in.executor.Execute(program)
}

// RunFile reads a script with the configured file reader and runs it
func (in *Interpreter) RunFile(path string) error {
	source, err := in.config.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return in.Run(string(source), path)
}

// Tokens lexes source into its full token list
func (in *Interpreter) Tokens(source, filename string) ([]Token, error) {
	return Tokenize(source, filename)
}

// ReportError writes err to the diagnostic stream, with source context
// when enabled and the error carries a position
func (in *Interpreter) ReportError(err error, source string) {
	var context []string
	if in.config.ShowErrorContext && source != "" {
		context = strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	}
	in.logger.ScriptError(err, context)
}

// Variables returns a snapshot of the scalar variables
func (in *Interpreter) Variables() map[string]Value {
	return in.env.Variables()
}

// Lists returns a snapshot of every declared list's elements
func (in *Interpreter) Lists() map[string][]Value {
	return in.env.Lists()
}

func displayName(filename string) string {
	if filename == "" {
		return "<script>"
	}
	return filename
}
