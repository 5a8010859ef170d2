package aocscript

import (
	"fmt"

	"github.com/phroun/aocscript/src/pkg/console"
)

// Executor walks a parsed Program against an Environment. Every node pushes
// exactly one value onto the environment's stack; the Statement wrapper
// pops it again, so the stack is empty between statements.
type Executor struct {
	env      *Environment
	out      *console.Console
	logger   *Logger
	readFile func(string) ([]byte, error)
	inputDir string
}

// NewExecutor creates an executor. config supplies the file reader and the
// directory relative load paths are resolved against.
func NewExecutor(env *Environment, out *console.Console, logger *Logger, config *Config) *Executor {
	config = config.withDefaults()
	if env == nil {
		env = NewEnvironment()
	}
	if logger == nil {
		logger = NewLoggerWithWriters(false, config.Stdout, config.Stderr)
	}
	if out == nil {
		out = console.New(config.Stdout, false)
	}
	return &Executor{
		env:      env,
		out:      out,
		logger:   logger,
		readFile: config.ReadFile,
		inputDir: config.InputDir,
	}
}

// Environment returns the state the executor mutates
func (e *Executor) Environment() *Environment {
	return e.env
}

// Execute runs every statement of program in order and stops at the first
// error
func (e *Executor) Execute(program *Program) error {
	e.env.ClearBreaks()
	for _, stmt := range program.Statements {
		if err := e.ExecuteStatement(stmt); err != nil {
			e.env.ClearStack()
			e.env.ClearBreaks()
			return err
		}
	}
	return nil
}

// ExecuteStatement evaluates one statement and discards its value
func (e *Executor) ExecuteStatement(stmt *Statement) error {
	if err := e.eval(stmt.Body); err != nil {
		return err
	}
	if _, err := e.pop(stmt); err != nil {
		return err
	}
	return nil
}

func (e *Executor) pop(n Node) (Value, error) {
	v, ok := e.env.Pop()
	if !ok {
		return Value{}, runtimeErrorf(n.Pos(), "evaluation stack underflow at %s", n)
	}
	return v, nil
}

// popKind pops a value that must be of the given kind; what names the value
// in the error message
func (e *Executor) popKind(n Node, kind ValueKind, what string) (Value, error) {
	v, err := e.pop(n)
	if err != nil {
		return v, err
	}
	if v.Kind() != kind {
		return v, runtimeErrorf(n.Pos(), "%s must be %s, got %s %s", what, kind, v.Kind(), v.Format())
	}
	return v, nil
}

// evalValue evaluates n and pops the value it pushed
func (e *Executor) evalValue(n Node) (Value, error) {
	if err := e.eval(n); err != nil {
		return Value{}, err
	}
	return e.pop(n)
}

// eval evaluates one node, leaving exactly one value on the stack
func (e *Executor) eval(n Node) error {
	switch n := n.(type) {
	case *Statement:
		if err := e.ExecuteStatement(n); err != nil {
			return err
		}
		e.env.Push(Value{})
		return nil

	case *IntegerLiteral:
		e.env.Push(IntegerValue(n.Value))
		return nil

	case *RealLiteral:
		e.env.Push(RealValue(n.Value))
		return nil

	case *StringLiteral:
		e.env.Push(TextValue(n.Value))
		return nil

	case *Identifier:
		return e.evalIdentifier(n)

	case *DayText:
		text, ok := e.env.Input()
		if !ok {
			return runtimeErrorf(n.Pos(), "DAY used before any input was loaded")
		}
		e.env.Push(TextValue(text))
		return nil

	case *BinaryOp:
		return e.evalBinary(n)

	case *Negate:
		v, err := e.evalValue(n.Operand)
		if err != nil {
			return err
		}
		if v.Kind() != KindInteger {
			return runtimeErrorf(n.Pos(), "cannot negate %s value %s", v.Kind(), v.Format())
		}
		e.env.Push(IntegerValue(-v.Int()))
		return nil

	case *Cast:
		v, err := e.evalValue(n.Operand)
		if err != nil {
			return err
		}
		cast, err := v.Cast(n.Kind)
		if err != nil {
			return runtimeErrorf(n.Pos(), "%v", err)
		}
		e.logger.TraceCat(CatType, "%s as %s -> %s", v.Format(), n.Kind, cast.Format())
		e.env.Push(cast)
		return nil

	case *IsDigit:
		v, err := e.evalValue(n.Operand)
		if err != nil {
			return err
		}
		e.env.Push(boolValue(v.IsDigit()))
		return nil

	case *IsAlpha:
		v, err := e.evalValue(n.Operand)
		if err != nil {
			return err
		}
		e.env.Push(boolValue(v.IsAlpha()))
		return nil

	case *ArrayIndex:
		return e.evalIndex(n)
	case *ArraySize:
		return e.evalSize(n)
	case *Assignment:
		return e.evalAssignment(n)
	case *IndexedAssignment:
		return e.evalIndexedAssignment(n)
	case *ListAppend:
		return e.evalAppend(n)
	case *ListDeclare:
		return e.evalListDeclare(n)
	case *PrintIdentifier:
		return e.evalPrintIdentifier(n)
	case *PrintString:
		return e.evalPrintString(n)
	case *PrintDay:
		return e.evalPrintDay(n)
	case *Load:
		return e.evalLoad(n)
	case *If:
		return e.evalIf(n)
	case *LoopTimes:
		return e.evalLoopTimes(n)
	case *LoopChars:
		return e.evalLoopChars(n)
	case *LoopLines:
		return e.evalLoopLines(n)
	case *Assert:
		return e.evalAssert(n)

	case *Break:
		e.env.RequestBreak()
		e.logger.DebugCat(CatFlow, "break requested (pending %d)", e.env.PendingBreaks())
		e.env.Push(Value{})
		return nil
	}
	return fmt.Errorf("executor: unhandled node %T", n)
}

func (e *Executor) evalIdentifier(n *Identifier) error {
	v, ok := e.env.Get(n.Name)
	if !ok {
		if _, isList := e.env.List(n.Name); isList {
			return runtimeErrorf(n.Pos(), "list %s cannot be used as a value; index it or use %s size", n.Name, n.Name)
		}
		return e.unknownName(n, n.Name)
	}
	e.env.Push(v)
	return nil
}

func (e *Executor) unknownName(n Node, name string) *RuntimeError {
	candidates := append(e.env.VariableNames(), e.env.ListNames()...)
	return runtimeErrorf(n.Pos(), "unknown identifier %s%s", name, didYouMean(name, candidates))
}

// evalBinary evaluates the left operand fully before the right one
func (e *Executor) evalBinary(n *BinaryOp) error {
	if err := e.eval(n.Left); err != nil {
		return err
	}
	if err := e.eval(n.Right); err != nil {
		return err
	}
	right, err := e.pop(n)
	if err != nil {
		return err
	}
	left, err := e.pop(n)
	if err != nil {
		return err
	}

	result, err := applyBinary(n.Op, left, right)
	if err != nil {
		return runtimeErrorf(n.Pos(), "%v", err)
	}
	e.logger.TraceCat(CatMath, "%s %s %s -> %s", left.Format(), operatorSymbol(n.Op), right.Format(), result.Format())
	e.env.Push(result)
	return nil
}
