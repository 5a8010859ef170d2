package aocscript

import (
	"fmt"
	"strings"
)

// SourcePosition tracks the position of code in source files
type SourcePosition struct {
	Line     int
	Column   int
	Length   int
	Filename string
}

func (p *SourcePosition) String() string {
	if p == nil {
		return "<unknown>"
	}
	filename := p.Filename
	if filename == "" {
		filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// PositionedError is implemented by errors that know where they happened
type PositionedError interface {
	error
	Pos() *SourcePosition
}

// LexError is raised when no token rule matches the remaining source
type LexError struct {
	Remainder string // offending text up to the end of its line
	Line      string // last fully consumed source line
	Position  *SourcePosition
}

func (e *LexError) Error() string {
	msg := fmt.Sprintf("unrecognised input %q", e.Remainder)
	if e.Line != "" {
		msg += fmt.Sprintf(" after line %q", e.Line)
	}
	return msg
}

// Pos returns where the unrecognised input starts
func (e *LexError) Pos() *SourcePosition { return e.Position }

// SyntaxError is raised when the parser finds a token it did not expect
type SyntaxError struct {
	Unexpected string // description of the token found
	Expected   string // construct the parser was looking for
	Line       string // source line being parsed
	Position   *SourcePosition
	Detail     string // optional extra explanation
	// AtEnd is set when the input ran out, so more input could complete it
	AtEnd bool
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unexpected %s, expected %s", e.Unexpected, e.Expected)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Line != "" {
		fmt.Fprintf(&b, " (in line %q)", strings.TrimSpace(e.Line))
	}
	return b.String()
}

// Pos returns the position of the unexpected token
func (e *SyntaxError) Pos() *SourcePosition { return e.Position }

// RuntimeError is raised while evaluating a script
type RuntimeError struct {
	Message  string
	Position *SourcePosition
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Pos returns the position of the node that failed
func (e *RuntimeError) Pos() *SourcePosition { return e.Position }

func runtimeErrorf(pos *SourcePosition, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Position: pos}
}
