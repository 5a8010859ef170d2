package aocscript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// REPL prompts
const (
	replPrompt   = "aoc> "
	replContinue = "...  "
)

const replHelp = `Statements end with ';'. if and loop bodies may span several lines.
Commands:
  :vars         show variables
  :lists        show lists
  :load FILE    run a script file in this session
  :reset        forget all variables, lists and input
  :help         show this help
  :quit         leave
`

// REPL is an interactive session over one Interpreter. Variables, lists,
// list declarations and loaded input persist between entries; an error is
// reported and the session continues.
type REPL struct {
	in          *Interpreter
	out         io.Writer
	historyPath string
}

// NewREPL creates a REPL writing command output to out
func NewREPL(in *Interpreter, out io.Writer) *REPL {
	if out == nil {
		out = os.Stdout
	}
	return &REPL{
		in:          in,
		out:         out,
		historyPath: replHistoryFilePath(),
	}
}

// replHistoryFilePath returns the path to ~/.aoc/repl-history
func replHistoryFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aoc", "repl-history")
}

// Run reads entries from the terminal until :quit or end of input
func (r *REPL) Run() {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	r.loadHistory(ln)
	defer r.saveHistory(ln)

	fmt.Fprintln(r.out, "AoC script REPL. Type :help for help, :quit to leave.")
	for {
		entry, ok := r.readEntry(ln)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if r.Command(trimmed) {
				return
			}
			continue
		}
		r.Eval(entry)
	}
}

// readEntry reads lines until they form complete statements. ok is false
// at end of input.
func (r *REPL) readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := replPrompt
		if b.Len() > 0 {
			prompt = replContinue
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the current entry
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !r.in.NeedsMoreInput(src) {
			return src, true
		}
	}
}

// Eval runs one entry, reporting any error. It returns the error as well.
func (r *REPL) Eval(source string) error {
	err := r.in.Run(source, "<repl>")
	if err != nil {
		r.in.ReportError(err, source)
	}
	return err
}

// Command handles a ':' command. It returns true when the session should end.
func (r *REPL) Command(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit", ":q":
		return true

	case ":help":
		fmt.Fprint(r.out, replHelp)

	case ":vars":
		vars := r.in.Variables()
		if len(vars) == 0 {
			fmt.Fprintln(r.out, "no variables")
		}
		for _, name := range r.in.env.VariableNames() {
			v := vars[name]
			fmt.Fprintf(r.out, "%s %s = %s\n", v.Kind(), name, v.Format())
		}

	case ":lists":
		names := r.in.env.ListNames()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "no lists")
		}
		for _, name := range names {
			list, _ := r.in.env.List(name)
			fmt.Fprintf(r.out, "%s = %s\n", list.Describe(), list)
		}

	case ":reset":
		r.in.Reset()
		fmt.Fprintln(r.out, "session reset")

	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(r.out, "usage: :load FILE")
			return false
		}
		source, err := r.in.config.ReadFile(fields[1])
		if err != nil {
			fmt.Fprintf(r.out, "cannot read %s: %v\n", fields[1], err)
			return false
		}
		if err := r.in.Run(string(source), fields[1]); err != nil {
			r.in.ReportError(err, string(source))
		}

	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for help.\n", fields[0])
	}
	return false
}

// loadHistory reads saved history (best-effort)
func (r *REPL) loadHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
}

// saveHistory writes the most recent history entries (best-effort)
func (r *REPL) saveHistory(ln *liner.State) {
	if r.historyPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyPath), 0755); err != nil {
		return
	}
	if f, err := os.Create(r.historyPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}
