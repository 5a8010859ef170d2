package aocscript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phroun/aocscript/src/pkg/console"
)

// LogLevel represents the severity of a log message (higher value = higher severity)
type LogLevel int

const (
	LevelTrace  LogLevel = iota // Detailed tracing (requires enabled + category)
	LevelInfo                   // Informational messages (requires enabled + category)
	LevelDebug                  // Development debugging (requires enabled + category)
	LevelNotice                 // Notable events (always shown)
	LevelWarn                   // Warnings (always shown)
	LevelError                  // Runtime errors (always shown)
	LevelFatal                  // Lex/syntax errors (always shown)
)

// LogCategory represents the subsystem generating the message
type LogCategory string

const (
	CatNone     LogCategory = ""         // Uncategorized
	CatLex      LogCategory = "lex"      // Tokenizer
	CatParse    LogCategory = "parse"    // Parser
	CatVariable LogCategory = "variable" // Variable operations (get/set)
	CatList     LogCategory = "list"     // List operations
	CatFlow     LogCategory = "flow"     // if, loops, break, assert
	CatIO       LogCategory = "io"       // load and print
	CatMath     LogCategory = "math"     // Arithmetic operations
	CatType     LogCategory = "type"     // Casts and type checks
	CatSystem   LogCategory = "system"   // Interpreter lifecycle
)

// AllLogCategories returns every category that can be enabled
func AllLogCategories() []LogCategory {
	return []LogCategory{
		CatLex, CatParse, CatVariable, CatList, CatFlow, CatIO, CatMath, CatType, CatSystem,
	}
}

// ParseLogCategory maps a category name to its LogCategory
func ParseLogCategory(name string) (LogCategory, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, cat := range AllLogCategories() {
		if string(cat) == name {
			return cat, true
		}
	}
	return CatNone, false
}

// ANSI color codes for diagnostic output
const (
	colorYellow = "\x1b[93m" // Bright yellow foreground
	colorReset  = "\x1b[0m"  // Reset to default
)

// Logger handles diagnostics for the interpreter
type Logger struct {
	enabled           bool
	enabledCategories map[LogCategory]bool
	out               io.Writer
	errOut            io.Writer
	// colorEnabled is true if terminal colors should be used for errOut
	colorEnabled bool
	contextLines int
}

// NewLogger creates a new logger writing debug output to stdout and
// diagnostics to stderr
func NewLogger(enabled bool) *Logger {
	return NewLoggerWithWriters(enabled, os.Stdout, os.Stderr)
}

// NewLoggerWithWriters creates a logger with explicit writers
func NewLoggerWithWriters(enabled bool, out, errOut io.Writer) *Logger {
	return &Logger{
		enabled:           enabled,
		enabledCategories: make(map[LogCategory]bool),
		out:               out,
		errOut:            errOut,
		colorEnabled:      console.SupportsColor(errOut),
		contextLines:      2,
	}
}

// SetContextLines sets how many source lines are shown before an error line
func (l *Logger) SetContextLines(n int) {
	l.contextLines = max(0, n)
}

// SetColorEnabled forces colored diagnostics on or off
func (l *Logger) SetColorEnabled(enabled bool) {
	l.colorEnabled = enabled
}

// SetEnabled enables or disables debug logging
func (l *Logger) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// EnableCategory enables debug logging for a specific category
func (l *Logger) EnableCategory(cat LogCategory) {
	l.enabledCategories[cat] = true
}

// DisableCategory disables debug logging for a specific category
func (l *Logger) DisableCategory(cat LogCategory) {
	delete(l.enabledCategories, cat)
}

// EnableAllCategories enables all categories for debug logging
func (l *Logger) EnableAllCategories() {
	for _, cat := range AllLogCategories() {
		l.enabledCategories[cat] = true
	}
}

// IsCategoryEnabled checks if a category is enabled
func (l *Logger) IsCategoryEnabled(cat LogCategory) bool {
	return l.enabledCategories[cat]
}

// shouldLog determines if a message should be logged based on level and category
func (l *Logger) shouldLog(level LogLevel, cat LogCategory) bool {
	switch level {
	case LevelFatal, LevelError, LevelWarn, LevelNotice:
		return true
	case LevelDebug, LevelInfo, LevelTrace:
		return l.enabled && (cat == CatNone || l.enabledCategories[cat])
	default:
		return false
	}
}

// writeOutput sends low-severity output to out and everything else to errOut
func (l *Logger) writeOutput(isDebug bool, output string) {
	if isDebug {
		_, _ = fmt.Fprintln(l.out, output)
		return
	}
	if l.colorEnabled {
		_, _ = fmt.Fprintf(l.errOut, "%s%s%s\n", colorYellow, output, colorReset)
	} else {
		_, _ = fmt.Fprintln(l.errOut, output)
	}
}

// Log is the unified logging method
func (l *Logger) Log(level LogLevel, cat LogCategory, message string, position *SourcePosition, context []string) {
	if !l.shouldLog(level, cat) {
		return
	}

	var prefix string
	catSuffix := ""
	if cat != CatNone {
		catSuffix = fmt.Sprintf(":%s", cat)
	}

	switch level {
	case LevelTrace:
		prefix = fmt.Sprintf("[TRACE%s]", catSuffix)
	case LevelInfo:
		prefix = fmt.Sprintf("[INFO%s]", catSuffix)
	case LevelDebug:
		prefix = fmt.Sprintf("[DEBUG%s]", catSuffix)
	case LevelNotice:
		prefix = fmt.Sprintf("[AoC%s NOTICE]", catSuffix)
	case LevelWarn:
		prefix = fmt.Sprintf("[AoC%s WARN]", catSuffix)
	case LevelError, LevelFatal:
		prefix = fmt.Sprintf("[AoC%s ERROR]", catSuffix)
	}

	output := fmt.Sprintf("%s %s", prefix, message)

	if position != nil {
		filename := position.Filename
		if filename == "" {
			filename = "<unknown>"
		}
		output += fmt.Sprintf("\n  at line %d, column %d in %s", position.Line, position.Column, filename)

		if len(context) > 0 {
			output += formatSourceContext(position, context, l.contextLines)
		}
	}

	isLowSeverity := level == LevelTrace || level == LevelInfo || level == LevelDebug
	l.writeOutput(isLowSeverity, output)
}

// Fatal logs a fatal error message (no position)
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Log(LevelFatal, CatNone, fmt.Sprintf(format, args...), nil, nil)
}

// Error logs an error message (no position)
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LevelError, CatNone, fmt.Sprintf(format, args...), nil, nil)
}

// ErrorCat logs a categorized error message
func (l *Logger) ErrorCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelError, cat, fmt.Sprintf(format, args...), nil, nil)
}

// Warn logs a warning message (no position)
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Log(LevelWarn, CatNone, fmt.Sprintf(format, args...), nil, nil)
}

// WarnCat logs a categorized warning message
func (l *Logger) WarnCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelWarn, cat, fmt.Sprintf(format, args...), nil, nil)
}

// Notice logs a notable event; always shown
func (l *Logger) Notice(format string, args ...interface{}) {
	l.Log(LevelNotice, CatNone, fmt.Sprintf(format, args...), nil, nil)
}

// NoticeCat logs a categorized notice message
func (l *Logger) NoticeCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelNotice, cat, fmt.Sprintf(format, args...), nil, nil)
}

// Debug logs a debug message (no position)
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log(LevelDebug, CatNone, fmt.Sprintf(format, args...), nil, nil)
}

// DebugCat logs a categorized debug message
func (l *Logger) DebugCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelDebug, cat, fmt.Sprintf(format, args...), nil, nil)
}

// TraceCat logs a categorized trace message
func (l *Logger) TraceCat(cat LogCategory, format string, args ...interface{}) {
	l.Log(LevelTrace, cat, fmt.Sprintf(format, args...), nil, nil)
}

// ScriptError reports an error returned by a script run, with source context
// when the error carries a position
func (l *Logger) ScriptError(err error, context []string) {
	var (
		level = LevelError
		cat   = CatNone
		label = "Runtime error"
	)
	var (
		lexErr    *LexError
		syntaxErr *SyntaxError
	)
	switch {
	case errors.As(err, &lexErr):
		level, cat, label = LevelFatal, CatLex, "Lex error"
	case errors.As(err, &syntaxErr):
		level, cat, label = LevelFatal, CatParse, "Syntax error"
	}

	var position *SourcePosition
	var pe PositionedError
	if errors.As(err, &pe) {
		position = pe.Pos()
	}
	l.Log(level, cat, fmt.Sprintf("%s: %s", label, err.Error()), position, context)
}

// formatSourceContext formats source context with line numbers
func formatSourceContext(position *SourcePosition, context []string, contextLines int) string {
	var message strings.Builder
	message.WriteString("\n")

	contextStart := max(0, position.Line-1-contextLines)
	contextEnd := min(len(context), position.Line+1)

	for i := contextStart; i < contextEnd; i++ {
		lineNum := i + 1
		isErrorLine := lineNum == position.Line

		prefix := " "
		if isErrorLine {
			prefix = ">"
		}

		message.WriteString(fmt.Sprintf("\n  %s %3d | %s", prefix, lineNum, context[i]))

		if isErrorLine && position.Column > 0 {
			indent := "      | " + strings.Repeat(" ", position.Column-1)
			caret := strings.Repeat("^", max(1, position.Length))
			message.WriteString(fmt.Sprintf("\n  %s%s", indent, caret))
		}
	}

	return message.String()
}
