// Package console provides the small ANSI color vocabulary used for script
// output: a fixed set of named colors, a push/pop color stack, and keyword
// highlighting for printed strings.
//
// Colors are only emitted when the console is enabled; a disabled console
// writes plain text, which keeps redirected output and tests readable.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Color is one of the named console colors
type Color int

const (
	White Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Reset
)

// ANSI sequences for each color. Blue uses an RGB value because the plain
// bright blue is hard to read on dark backgrounds.
var sequences = map[Color]string{
	White:   "\033[37m",
	Red:     "\033[91m",
	Green:   "\033[92m",
	Yellow:  "\033[93m",
	Blue:    "\033[38;2;50;80;255m",
	Magenta: "\033[95m",
	Cyan:    "\033[96m",
	Reset:   "\033[0m",
}

var names = map[Color]string{
	White:   "WHITE",
	Red:     "RED",
	Green:   "GREEN",
	Yellow:  "YELLOW",
	Blue:    "BLUE",
	Magenta: "MAGENTA",
	Cyan:    "CYAN",
	Reset:   "RESET",
}

// Sequence returns the escape sequence for c, or the reset sequence for an
// unknown color.
func (c Color) Sequence() string {
	if seq, ok := sequences[c]; ok {
		return seq
	}
	return sequences[Reset]
}

func (c Color) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// keyword is a substring that gets highlighted when it appears in printed text
type keyword struct {
	word  string
	color Color
}

// Order matters: longer words that contain shorter ones must come first.
var keywords = []keyword{
	{"FAILED", Red},
	{"SUCCESS", Green},
	{"MAGENTA", Magenta},
	{"YELLOW", Yellow},
	{"GREEN", Green},
	{"WHITE", White},
	{"BLUE", Blue},
	{"CYAN", Cyan},
	{"RED", Red},
}

// Console writes to an output stream, tracking a stack of active colors
type Console struct {
	out     io.Writer
	enabled bool
	stack   []Color
}

// New creates a console writing to out. Colors are enabled as requested.
func New(out io.Writer, enabled bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out, enabled: enabled}
}

// Writer returns the underlying output stream
func (c *Console) Writer() io.Writer {
	return c.out
}

// Enabled reports whether escape sequences are written
func (c *Console) Enabled() bool {
	return c.enabled
}

// SetEnabled turns color output on or off
func (c *Console) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Push makes color the active color until the matching Pop
func (c *Console) Push(color Color) {
	c.stack = append(c.stack, color)
	c.emit(color)
}

// Pop restores the previously active color, or resets when the stack empties
func (c *Console) Pop() {
	color := Reset
	if len(c.stack) > 0 {
		c.stack = c.stack[:len(c.stack)-1]
		if len(c.stack) > 0 {
			color = c.stack[len(c.stack)-1]
		}
	}
	c.emit(color)
}

// ResetColor clears the stack and resets the terminal color
func (c *Console) ResetColor() {
	c.stack = c.stack[:0]
	c.emit(Reset)
}

func (c *Console) emit(color Color) {
	if c.enabled {
		_, _ = io.WriteString(c.out, color.Sequence())
	}
}

// Print writes text as-is
func (c *Console) Print(text string) {
	_, _ = io.WriteString(c.out, text)
}

// Printf formats and writes text
func (c *Console) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Colored writes text in the given color
func (c *Console) Colored(color Color, text string) {
	c.Push(color)
	c.Print(text)
	c.Pop()
}

// Highlight writes text, coloring each keyword occurrence in its color
func (c *Console) Highlight(text string) {
	if !c.enabled {
		c.Print(text)
		return
	}
	c.Print(c.HighlightString(text))
}

// HighlightString returns text with keyword occurrences wrapped in color
// sequences. The active color (if any) is restored after each keyword.
func (c *Console) HighlightString(text string) string {
	if !c.enabled {
		return text
	}
	restore := Reset
	if len(c.stack) > 0 {
		restore = c.stack[len(c.stack)-1]
	}

	var b strings.Builder
	for i := 0; i < len(text); {
		matched := false
		for _, kw := range keywords {
			if strings.HasPrefix(text[i:], kw.word) {
				b.WriteString(kw.color.Sequence())
				b.WriteString(kw.word)
				b.WriteString(restore.Sequence())
				i += len(kw.word)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(text[i])
			i++
		}
	}
	return b.String()
}

// SupportsColor reports whether w is a terminal that should receive escape
// sequences. NO_COLOR and TERM=dumb disable color.
func SupportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}
