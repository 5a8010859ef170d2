package aocscript

import (
	"sort"
	"strings"
)

// Environment is the mutable state of one script run: the evaluation
// stack, scalar variables, declared lists, the loaded puzzle input and the
// pending break count. An Environment belongs to a single run and is not
// safe for concurrent use.
type Environment struct {
	stack     []Value
	variables map[string]Value
	lists     map[string]*List

	input      string
	inputLines []string
	loaded     bool

	// breaks counts break requests not yet consumed by an enclosing loop
	breaks int
}

// NewEnvironment creates an empty environment
func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]Value),
		lists:     make(map[string]*List),
	}
}

// Push puts a value on the evaluation stack
func (e *Environment) Push(v Value) {
	e.stack = append(e.stack, v)
}

// Pop removes the top of the evaluation stack. ok is false when the stack
// is empty.
func (e *Environment) Pop() (v Value, ok bool) {
	if len(e.stack) == 0 {
		return Value{}, false
	}
	v = e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, true
}

// StackDepth returns the number of values on the evaluation stack
func (e *Environment) StackDepth() int {
	return len(e.stack)
}

// ClearStack drops any values left by an evaluation that failed part way
func (e *Environment) ClearStack() {
	e.stack = e.stack[:0]
}

// Get looks up a scalar variable
func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.variables[name]
	return v, ok
}

// Set stores a scalar variable, replacing any previous value and type
func (e *Environment) Set(name string, v Value) {
	e.variables[name] = v
}

// Delete removes a scalar variable
func (e *Environment) Delete(name string) {
	delete(e.variables, name)
}

// VariableNames returns the names of all scalar variables, sorted
func (e *Environment) VariableNames() []string {
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variables returns a copy of the scalar variable table
func (e *Environment) Variables() map[string]Value {
	out := make(map[string]Value, len(e.variables))
	for k, v := range e.variables {
		out[k] = v
	}
	return out
}

// List looks up a declared list
func (e *Environment) List(name string) (*List, bool) {
	l, ok := e.lists[name]
	return l, ok
}

// DeclareList creates a new empty list, replacing any list of that name
func (e *Environment) DeclareList(name string, elem ValueKind, sorted bool) *List {
	l := NewList(name, elem, sorted)
	e.lists[name] = l
	return l
}

// ListNames returns the names of all declared lists, sorted
func (e *Environment) ListNames() []string {
	names := make([]string, 0, len(e.lists))
	for name := range e.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lists returns a copy of every list's elements keyed by name
func (e *Environment) Lists() map[string][]Value {
	out := make(map[string][]Value, len(e.lists))
	for name, l := range e.lists {
		out[name] = l.Values()
	}
	return out
}

// SetInput stores loaded puzzle input. The text is split on newlines; a
// trailing empty line and carriage returns are dropped.
func (e *Environment) SetInput(text string) {
	e.input = text
	e.loaded = true

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	e.inputLines = lines
}

// Input returns the loaded text and whether anything was loaded
func (e *Environment) Input() (string, bool) {
	return e.input, e.loaded
}

// InputLines returns the loaded input split into lines
func (e *Environment) InputLines() []string {
	return e.inputLines
}

// RequestBreak records a break for the innermost enclosing loop
func (e *Environment) RequestBreak() {
	e.breaks++
}

// ConsumeBreak reports whether a break is pending and, if so, clears one
func (e *Environment) ConsumeBreak() bool {
	if e.breaks == 0 {
		return false
	}
	e.breaks--
	return true
}

// ClearBreaks drops any break requests no loop consumed
func (e *Environment) ClearBreaks() {
	e.breaks = 0
}

// PendingBreaks returns the number of unconsumed break requests
func (e *Environment) PendingBreaks() int {
	return e.breaks
}
