package aocscript

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phroun/aocscript/src/pkg/console"
)

func (e *Executor) evalPrintIdentifier(n *PrintIdentifier) error {
	if v, ok := e.env.Get(n.Name); ok {
		e.printNamed(n.Name, e.formatValue(v))
		e.env.Push(Value{})
		return nil
	}
	if list, ok := e.env.List(n.Name); ok {
		e.printNamed(n.Name, e.formatList(list))
		e.env.Push(Value{})
		return nil
	}
	return e.unknownName(n, n.Name)
}

// printNamed writes "name = value" with the name in cyan
func (e *Executor) printNamed(name, rendered string) {
	e.out.Colored(console.Cyan, name)
	e.out.Print(" = " + rendered + "\n")
}

func (e *Executor) evalPrintString(n *PrintString) error {
	v, err := e.evalValue(n.Value)
	if err != nil {
		return err
	}
	if v.Kind() == KindText {
		e.out.Highlight(v.Text())
	} else {
		e.out.Print(v.Format())
	}
	e.out.Print("\n")
	e.env.Push(Value{})
	return nil
}

func (e *Executor) evalPrintDay(n *PrintDay) error {
	text, ok := e.env.Input()
	if !ok {
		return runtimeErrorf(n.Pos(), "print DAY used before any input was loaded")
	}
	e.out.Print(text)
	if !strings.HasSuffix(text, "\n") {
		e.out.Print("\n")
	}
	e.env.Push(Value{})
	return nil
}

// resolveInputPath joins relative load paths onto the configured input dir
func (e *Executor) resolveInputPath(path string) string {
	if e.inputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.inputDir, path)
}

// evalLoad reads the input file and leaves the number of lines on the stack
func (e *Executor) evalLoad(n *Load) error {
	if err := e.eval(n.Path); err != nil {
		return err
	}
	pathValue, err := e.popKind(n, KindText, "load path")
	if err != nil {
		return err
	}

	path := e.resolveInputPath(pathValue.Text())
	content, err := e.readFile(path)
	if err != nil {
		return runtimeErrorf(n.Pos(), "cannot load %q: %v", path, err)
	}
	e.env.SetInput(string(content))
	lines := len(e.env.InputLines())
	e.logger.DebugCat(CatIO, "loaded %s (%d bytes, %d lines)", path, len(content), lines)
	e.env.Push(IntegerValue(int32(lines)))
	return nil
}

// evalAssert echoes the failing condition to the diagnostic log and fails
// with the assert message
func (e *Executor) evalAssert(n *Assert) error {
	if err := e.eval(n.Condition); err != nil {
		return err
	}
	v, err := e.popKind(n, KindInteger, "assert condition")
	if err != nil {
		return err
	}
	if v.Int() == 0 {
		e.logger.WarnCat(CatFlow, "assert failed: %s", n.Condition)
		return runtimeErrorf(n.Pos(), "assertion failed: %s", n.Message)
	}
	e.logger.DebugCat(CatFlow, "assert passed: %s", n.Condition)
	e.env.Push(Value{})
	return nil
}

// formatValue renders a value for print, highlighting keywords in strings
func (e *Executor) formatValue(v Value) string {
	if v.Kind() == KindText {
		return "'" + e.out.HighlightString(v.Text()) + "'"
	}
	return v.Format()
}

func (e *Executor) formatList(list *List) string {
	values := list.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = e.formatValue(v)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
