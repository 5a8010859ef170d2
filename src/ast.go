package aocscript

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is any syntax tree node. The set of nodes is closed: every
// implementation lives in this file and the evaluator switches over all of
// them.
type Node interface {
	String() string
	Pos() *SourcePosition
	node()
}

// nodeBase carries the source position shared by every node
type nodeBase struct {
	Position SourcePosition
}

func (b *nodeBase) Pos() *SourcePosition { return &b.Position }
func (*nodeBase) node()                  {}

// Program is the root of a parsed script
type Program struct {
	Statements []*Statement
}

func (p *Program) String() string {
	lines := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// Statement wraps a top-level or block statement and discards the value it
// leaves on the stack
type Statement struct {
	nodeBase
	Body Node
}

func (s *Statement) String() string { return s.Body.String() + ";" }

// Literals and names

type IntegerLiteral struct {
	nodeBase
	Value int32
}

func (n *IntegerLiteral) String() string { return strconv.FormatInt(int64(n.Value), 10) }

type RealLiteral struct {
	nodeBase
	Value float32
}

func (n *RealLiteral) String() string {
	return strconv.FormatFloat(float64(n.Value), 'f', -1, 32)
}

type StringLiteral struct {
	nodeBase
	Value string
}

func (n *StringLiteral) String() string { return `"` + n.Value + `"` }

// Identifier reads a scalar variable
type Identifier struct {
	nodeBase
	Name string
}

func (n *Identifier) String() string { return n.Name }

// DayText is the loaded puzzle input used as a value
type DayText struct {
	nodeBase
}

func (n *DayText) String() string { return "DAY" }

// Operators

// BinaryOp covers arithmetic (+ - * / modulo) and comparisons
type BinaryOp struct {
	nodeBase
	Op    TokenType
	Left  Node
	Right Node
}

func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, operatorSymbol(n.Op), n.Right)
}

// Negate is integer unary minus
type Negate struct {
	nodeBase
	Operand Node
}

func (n *Negate) String() string { return "-" + n.Operand.String() }

// Cast converts its operand with "as TYPE"
type Cast struct {
	nodeBase
	Operand Node
	Kind    ValueKind
}

func (n *Cast) String() string { return fmt.Sprintf("(%s as %s)", n.Operand, n.Kind) }

// IsDigit tests that a value is all digits
type IsDigit struct {
	nodeBase
	Operand Node
}

func (n *IsDigit) String() string { return n.Operand.String() + " is DIGIT" }

// IsAlpha tests that a value is all letters
type IsAlpha struct {
	nodeBase
	Operand Node
}

func (n *IsAlpha) String() string { return n.Operand.String() + " is ALPHA" }

// ArrayIndex reads one element of a list or one character of a string
type ArrayIndex struct {
	nodeBase
	Name  string
	Index Node
}

func (n *ArrayIndex) String() string { return fmt.Sprintf("%s[%s]", n.Name, n.Index) }

// ArraySize is the element count of a list or length of a string
type ArraySize struct {
	nodeBase
	Name string
}

func (n *ArraySize) String() string { return n.Name + " size" }

// Assignments

type Assignment struct {
	nodeBase
	Name  string
	Value Node
}

func (n *Assignment) String() string { return fmt.Sprintf("%s = %s", n.Name, n.Value) }

type IndexedAssignment struct {
	nodeBase
	Name  string
	Index Node
	Value Node
}

func (n *IndexedAssignment) String() string {
	return fmt.Sprintf("%s[%s] = %s", n.Name, n.Index, n.Value)
}

type ListAppend struct {
	nodeBase
	Name  string
	Value Node
}

func (n *ListAppend) String() string { return fmt.Sprintf("%s << %s", n.Name, n.Value) }

type ListDeclare struct {
	nodeBase
	Name   string
	Elem   ValueKind
	Sorted bool
}

func (n *ListDeclare) String() string {
	order := "unsorted"
	if n.Sorted {
		order = "sorted"
	}
	return fmt.Sprintf("%s %s list %s", order, n.Elem, n.Name)
}

// Output and input

// PrintIdentifier prints "name = value" for a variable or list
type PrintIdentifier struct {
	nodeBase
	Name string
}

func (n *PrintIdentifier) String() string { return "print " + n.Name }

// PrintString prints the value of an expression
type PrintString struct {
	nodeBase
	Value Node
}

func (n *PrintString) String() string { return "print " + n.Value.String() }

// PrintDay dumps the loaded input
type PrintDay struct {
	nodeBase
}

func (n *PrintDay) String() string { return "print DAY" }

type Load struct {
	nodeBase
	Path Node
}

func (n *Load) String() string { return "load " + n.Path.String() }

// Control flow

type If struct {
	nodeBase
	Condition Node
	Then      []*Statement
	Else      []*Statement
}

func (n *If) String() string {
	return fmt.Sprintf("if %s: %s else: %s end", n.Condition, blockString(n.Then), blockString(n.Else))
}

// LoopTimes runs its body a fixed number of times, binding ITER
type LoopTimes struct {
	nodeBase
	Count Node
	Body  []*Statement
}

func (n *LoopTimes) String() string {
	return fmt.Sprintf("loop %s times: %s loopstop", n.Count, blockString(n.Body))
}

// LoopChars runs its body once per list element or string character,
// binding CHAR and ITER
type LoopChars struct {
	nodeBase
	Name string
	Body []*Statement
}

func (n *LoopChars) String() string {
	return fmt.Sprintf("loop %s chars: %s loopstop", n.Name, blockString(n.Body))
}

// LoopLines runs its body once per loaded input line, binding LINE and ITER
type LoopLines struct {
	nodeBase
	Body []*Statement
}

func (n *LoopLines) String() string {
	return fmt.Sprintf("loop DAY lines: %s loopstop", blockString(n.Body))
}

type Assert struct {
	nodeBase
	Condition Node
	Message   string
}

func (n *Assert) String() string { return fmt.Sprintf("assert %s : \"%s\"", n.Condition, n.Message) }

type Break struct {
	nodeBase
}

func (n *Break) String() string { return "break" }

func blockString(body []*Statement) string {
	if len(body) == 0 {
		return ""
	}
	parts := make([]string, len(body))
	for i, s := range body {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
