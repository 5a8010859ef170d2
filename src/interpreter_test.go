package aocscript

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"testing"
)

// testInterpreter builds an interpreter with captured output and an
// in-memory file system for load
func testInterpreter(files map[string]string) (*Interpreter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	in := New(&Config{
		Color:  ColorNever,
		Stdout: &stdout,
		Stderr: &stderr,
		ReadFile: func(path string) ([]byte, error) {
			content, ok := files[path]
			if !ok {
				return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
			}
			return []byte(content), nil
		},
	})
	return in, &stdout, &stderr
}

func mustRun(t *testing.T, in *Interpreter, source string) {
	t.Helper()
	if err := in.Run(source, "test.aoc"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func expectRuntimeError(t *testing.T, in *Interpreter, source, contains string) *RuntimeError {
	t.Helper()
	err := in.Run(source, "test.aoc")
	if err == nil {
		t.Fatalf("Expected runtime error containing %q", contains)
	}
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("Expected *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(runtimeErr.Error(), contains) {
		t.Errorf("Expected error containing %q, got %q", contains, runtimeErr.Error())
	}
	return runtimeErr
}

func intVar(t *testing.T, in *Interpreter, name string) int32 {
	t.Helper()
	v, ok := in.Variables()[name]
	if !ok {
		t.Fatalf("Variable %s not set", name)
	}
	if v.Kind() != KindInteger {
		t.Fatalf("Expected %s to be INT, got %s", name, v.Kind())
	}
	return v.Int()
}

func TestPrecedence(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, "x = 1 + 2 * 3;")
	if got := intVar(t, in, "x"); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
}

func TestLeftAssociativity(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, "x = 10 - 3 - 2; y = 100 / 10 / 5;")
	if got := intVar(t, in, "x"); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := intVar(t, in, "y"); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
}

func TestTypeMismatchRejected(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	expectRuntimeError(t, in, `x = 1 + "a";`, "type mismatch: INT + STRING")

	if _, ok := in.Variables()["x"]; ok {
		t.Error("Expected x to stay unassigned")
	}
	if depth := in.Environment().StackDepth(); depth != 0 {
		t.Errorf("Expected empty stack after error, got depth %d", depth)
	}
}

func TestEndToEnd(t *testing.T) {
	in, stdout, _ := testInterpreter(nil)
	mustRun(t, in, "x = 5; y = x + 3; print y;")

	if !strings.Contains(stdout.String(), "y = 8") {
		t.Errorf("Expected output to show y = 8, got %q", stdout.String())
	}
	if got := intVar(t, in, "x"); got != 5 {
		t.Errorf("Expected x = 5, got %d", got)
	}
	if got := intVar(t, in, "y"); got != 8 {
		t.Errorf("Expected y = 8, got %d", got)
	}
	if depth := in.Environment().StackDepth(); depth != 0 {
		t.Errorf("Expected empty stack, got depth %d", depth)
	}
}

func TestAssert(t *testing.T) {
	in, _, stderr := testInterpreter(nil)
	expectRuntimeError(t, in, `assert 1 == 2 : "mismatch";`, "mismatch")
	if !strings.Contains(stderr.String(), "assert failed: (1 == 2)") {
		t.Errorf("Expected failing condition on diagnostics, got %q", stderr.String())
	}

	in, _, _ = testInterpreter(nil)
	mustRun(t, in, `assert 1 == 1 : "unused";`)
	if depth := in.Environment().StackDepth(); depth != 0 {
		t.Errorf("Expected empty stack, got depth %d", depth)
	}
}

func TestSortedListThroughScript(t *testing.T) {
	in, stdout, _ := testInterpreter(nil)
	mustRun(t, in, `
sorted INT list nums;
nums << 5;
nums << 1;
nums << 3;
print nums;
nums[0] = 10;
print nums;
first = nums[0];
n = nums size;
`)

	want := "nums = [1, 3, 5]\nnums = [3, 5, 10]\n"
	if stdout.String() != want {
		t.Errorf("Expected %q, got %q", want, stdout.String())
	}
	if got := intVar(t, in, "first"); got != 3 {
		t.Errorf("Expected first = 3, got %d", got)
	}
	if got := intVar(t, in, "n"); got != 3 {
		t.Errorf("Expected n = 3, got %d", got)
	}
}

func TestListHomogeneity(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	expectRuntimeError(t, in, `unsorted INT list nums; nums << 1; nums << "a";`, "cannot store STRING value 'a' in INT list nums")

	values := in.Lists()["nums"]
	if len(values) != 1 || values[0] != IntegerValue(1) {
		t.Errorf("Expected nums unchanged as [1], got %v", values)
	}
}

func TestBreakScoping(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
outer = 0;
inner = 0;
after = 0;
loop 3 times:
  loop 3 times:
    inner = inner + 1;
    break;
    after = after + 1;
  loopstop;
  outer = outer + 1;
loopstop;
`)
	if got := intVar(t, in, "outer"); got != 3 {
		t.Errorf("Expected outer body to finish 3 times, got %d", got)
	}
	if got := intVar(t, in, "inner"); got != 3 {
		t.Errorf("Expected inner pre-break statement 3 times, got %d", got)
	}
	if got := intVar(t, in, "after"); got != 0 {
		t.Errorf("Expected statements after break never to run, got %d", got)
	}
}

func TestBreakInsideIf(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
count = 0;
loop 10 times:
  if ITER == 4: break; else: end;
  count = count + 1;
loopstop;
`)
	if got := intVar(t, in, "count"); got != 4 {
		t.Errorf("Expected 4 iterations before break, got %d", got)
	}
}

func TestLoopBindingsRestored(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
last = 0;
loop 3 times: last = ITER; loopstop;
`)
	if got := intVar(t, in, "last"); got != 2 {
		t.Errorf("Expected last ITER 2, got %d", got)
	}
	if _, ok := in.Variables()[IterName]; ok {
		t.Error("Expected ITER to be unbound after the loop")
	}

	mustRun(t, in, `
sum = 0;
loop 2 times:
  loop 3 times: sum = sum + 1; loopstop;
  sum = sum + ITER * 10;
loopstop;
`)
	if got := intVar(t, in, "sum"); got != 16 {
		t.Errorf("Expected outer ITER restored after inner loop (sum 16), got %d", got)
	}
}

func TestLoopChars(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
s = "a1b22c";
digits = 0;
letters = "";
loop s chars:
  if CHAR is DIGIT: digits = digits + 1; else: letters = letters + CHAR; end;
loopstop;

unsorted INT list xs;
xs << 4;
xs << 6;
total = 0;
loop xs chars: total = total + CHAR * ITER; loopstop;
`)
	if got := intVar(t, in, "digits"); got != 3 {
		t.Errorf("Expected 3 digits, got %d", got)
	}
	if got := in.Variables()["letters"].Text(); got != "abc" {
		t.Errorf("Expected letters abc, got %q", got)
	}
	if got := intVar(t, in, "total"); got != 6 {
		t.Errorf("Expected total 6, got %d", got)
	}
}

func TestLoadAndLoopLines(t *testing.T) {
	in, stdout, _ := testInterpreter(map[string]string{
		"input.txt": "10\n20\n30\n",
	})
	mustRun(t, in, `
load "input.txt";
total = 0;
count = 0;
loop DAY lines: total = total + LINE as INT; count = count + 1; loopstop;
print total;
print DAY;
`)
	if got := intVar(t, in, "total"); got != 60 {
		t.Errorf("Expected total 60, got %d", got)
	}
	if got := intVar(t, in, "count"); got != 3 {
		t.Errorf("Expected 3 input lines, got %d", got)
	}
	want := "total = 60\n10\n20\n30\n"
	if stdout.String() != want {
		t.Errorf("Expected %q, got %q", want, stdout.String())
	}
}

func TestLoadResolvesAgainstInputDir(t *testing.T) {
	var requested string
	in := New(&Config{
		Color:    ColorNever,
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		InputDir: "inputs",
		ReadFile: func(path string) ([]byte, error) {
			requested = path
			return []byte("x"), nil
		},
	})
	mustRun(t, in, `load "day1.txt";`)
	if requested != "inputs/day1.txt" {
		t.Errorf("Expected inputs/day1.txt, got %q", requested)
	}
}

func TestLoadFailureNamesPath(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	expectRuntimeError(t, in, `load "missing.txt"; print "never";`, "missing.txt")
}

func TestDayBeforeLoad(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	expectRuntimeError(t, in, "print DAY;", "before any input was loaded")
	expectRuntimeError(t, in, "x = DAY;", "before any input was loaded")
}

func TestStringIndexAndSize(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
s = "hello";
c = s[1];
n = s size;
s[0] = "j";
`)
	vars := in.Variables()
	if vars["c"] != TextValue("e") {
		t.Errorf("Expected c = 'e', got %s", vars["c"].Format())
	}
	if vars["n"] != IntegerValue(5) {
		t.Errorf("Expected n = 5, got %s", vars["n"].Format())
	}
	if vars["s"] != TextValue("jello") {
		t.Errorf("Expected s = 'jello', got %s", vars["s"].Format())
	}

	expectRuntimeError(t, in, "x = 5; y = x size;", "cannot take size of INT variable x")
	expectRuntimeError(t, in, "z = s[9];", "index 9 out of range")
}

func TestPrintFormatting(t *testing.T) {
	in, stdout, _ := testInterpreter(nil)
	mustRun(t, in, `
f = 1.5 * 2.0;
print f;
w = "word";
print w;
unsorted STRING list names;
names << "b";
names << "a";
print names;
print "SUCCESS";
print 1 + 1;
`)
	want := "f = 3.00\nw = 'word'\nnames = ['b', 'a']\nSUCCESS\n2\n"
	if stdout.String() != want {
		t.Errorf("Expected %q, got %q", want, stdout.String())
	}
}

func TestPrintHighlightsKeywords(t *testing.T) {
	var stdout bytes.Buffer
	in := New(&Config{Color: ColorAlways, Stdout: &stdout, Stderr: &bytes.Buffer{}})
	mustRun(t, in, `print "test FAILED";`)
	if !strings.Contains(stdout.String(), "\033[91mFAILED") {
		t.Errorf("Expected FAILED in red, got %q", stdout.String())
	}
}

func TestCastAndPredicates(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
a = "42" as INT + 1;
b = (7 as FLOAT) / 2.0;
c = 3.99 as INT;
d = 12 as STRING + "x";
e = "abc" is ALPHA;
f = "ab1" is DIGIT;
`)
	vars := in.Variables()
	if vars["a"] != IntegerValue(43) {
		t.Errorf("Expected a = 43, got %s", vars["a"].Format())
	}
	if vars["b"] != RealValue(3.5) {
		t.Errorf("Expected b = 3.50, got %s", vars["b"].Format())
	}
	if vars["c"] != IntegerValue(3) {
		t.Errorf("Expected c = 3, got %s", vars["c"].Format())
	}
	if vars["d"] != TextValue("12x") {
		t.Errorf("Expected d = '12x', got %s", vars["d"].Format())
	}
	if vars["e"] != IntegerValue(1) || vars["f"] != IntegerValue(0) {
		t.Errorf("Expected e = 1 and f = 0, got %s and %s", vars["e"].Format(), vars["f"].Format())
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"division by zero", "x = 1 / 0;", "division by zero"},
		{"modulo by zero", "x = 1 modulo 0;", "modulo by zero"},
		{"unknown identifier", "count = 1; y = cout;", "unknown identifier cout (did you mean count?)"},
		{"string condition", `if "a": else: end;`, "if condition must be INT"},
		{"float loop count", "loop 2.0 times: loopstop;", "loop count must be INT"},
		{"negative index", "sorted INT list xs; xs << 1; y = xs[0 - 1];", "must not be negative"},
		{"negate string", `x = -"a";`, "cannot negate STRING"},
		{"list as value", "sorted INT list xs; y = xs;", "list xs cannot be used as a value"},
		{"bad cast", `x = "abc" as INT;`, "cannot cast 'abc' to INT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _, _ := testInterpreter(nil)
			err := expectRuntimeError(t, in, tt.source, tt.want)
			if err.Position == nil || err.Position.Line != 1 {
				t.Errorf("Expected error position on line 1, got %v", err.Position)
			}
		})
	}
}

func TestRuntimeErrorStopsExecution(t *testing.T) {
	in, stdout, _ := testInterpreter(nil)
	expectRuntimeError(t, in, `print "before"; x = 1 / 0; print "after";`, "division by zero")
	if stdout.String() != "before\n" {
		t.Errorf("Expected only the first print, got %q", stdout.String())
	}
}

func TestSyntaxErrorRunsNothing(t *testing.T) {
	in, stdout, _ := testInterpreter(nil)
	err := in.Run(`print "before"; x = ;`, "test.aoc")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no output, got %q", stdout.String())
	}
}

func TestListDeclarationResetsInLoop(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, `
loop 3 times:
  unsorted INT list seen;
  seen << ITER;
loopstop;
`)
	values := in.Lists()["seen"]
	if len(values) != 1 || values[0] != IntegerValue(2) {
		t.Errorf("Expected seen = [2], got %v", values)
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, "unsorted INT list xs; n = 1;")
	mustRun(t, in, "xs << n; xs << n + 1;")

	if got := len(in.Lists()["xs"]); got != 2 {
		t.Errorf("Expected 2 elements, got %d", got)
	}

	// a failed parse must not leave its declarations behind
	if err := in.Run("sorted INT list ys; ys << ;", "test.aoc"); err == nil {
		t.Fatal("Expected syntax error")
	}
	var syntaxErr *SyntaxError
	if err := in.Run("ys << 1;", "test.aoc"); !errors.As(err, &syntaxErr) {
		t.Errorf("Expected ys to be undeclared, got %v", err)
	}

	in.Reset()
	if len(in.Variables()) != 0 || len(in.Lists()) != 0 {
		t.Error("Expected Reset to clear all state")
	}
	if err := in.Run("xs << 1;", "test.aoc"); err == nil {
		t.Error("Expected xs to be undeclared after Reset")
	}
}

func TestFailedRunDropsPendingBreak(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	expectRuntimeError(t, in, `loop 2 times: if 1 == 1: break; x = 1 + "a"; else: end; loopstop;`, "type mismatch")

	if n := in.Environment().PendingBreaks(); n != 0 {
		t.Errorf("Expected no pending breaks after failed run, got %d", n)
	}
	mustRun(t, in, "n = 0; loop 3 times: n = n + 1; loopstop;")
	if got := intVar(t, in, "n"); got != 3 {
		t.Errorf("Expected n = 3, got %d", got)
	}
}

func TestIntegerMinimumLiteral(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	mustRun(t, in, "x = -2147483648; y = x + 1; z = -(5);")
	if got := intVar(t, in, "x"); got != math.MinInt32 {
		t.Errorf("Expected x = %d, got %d", math.MinInt32, got)
	}
	if got := intVar(t, in, "y"); got != math.MinInt32+1 {
		t.Errorf("Expected y = %d, got %d", math.MinInt32+1, got)
	}
	if got := intVar(t, in, "z"); got != -5 {
		t.Errorf("Expected z = -5, got %d", got)
	}

	var syntaxErr *SyntaxError
	if err := in.Run("x = -2147483649;", "test.aoc"); !errors.As(err, &syntaxErr) {
		t.Errorf("Expected out-of-range literal to be a syntax error, got %v", err)
	}
}

func TestNeedsMoreInput(t *testing.T) {
	in, _, _ := testInterpreter(nil)
	tests := []struct {
		source string
		want   bool
	}{
		{"x = 1;", false},
		{"x = 1", true},
		{"loop 3 times:", true},
		{"loop 3 times:\n  print ITER;", true},
		{"loop 3 times:\n  print ITER;\nloopstop;", false},
		{"if x > 1:", true},
		{"x = ;", false},
	}
	for _, tt := range tests {
		if got := in.NeedsMoreInput(tt.source); got != tt.want {
			t.Errorf("NeedsMoreInput(%q): expected %v, got %v", tt.source, tt.want, got)
		}
	}
}

func TestReportErrorShowsContext(t *testing.T) {
	var stderr bytes.Buffer
	in := New(&Config{
		Color:            ColorNever,
		ShowErrorContext: true,
		ContextLines:     1,
		Stdout:           &bytes.Buffer{},
		Stderr:           &stderr,
	})
	source := "x = 1;\ny = x / 0;"
	err := in.Run(source, "day.aoc")
	if err == nil {
		t.Fatal("Expected runtime error")
	}
	in.ReportError(err, source)

	out := stderr.String()
	for _, want := range []string{
		"[AoC ERROR] Runtime error: division by zero",
		"at line 2, column 7 in day.aoc",
		">   2 | y = x / 0;",
		"      |       ^",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDebugLogging(t *testing.T) {
	var stdout bytes.Buffer
	in := New(&Config{
		Debug:           true,
		DebugCategories: []LogCategory{CatVariable},
		Color:           ColorNever,
		Stdout:          &stdout,
		Stderr:          &bytes.Buffer{},
	})
	mustRun(t, in, "x = 2 + 2;")

	out := stdout.String()
	if !strings.Contains(out, "[DEBUG:variable] x = 4") {
		t.Errorf("Expected variable debug line, got %q", out)
	}
	if strings.Contains(out, "[TRACE:math]") {
		t.Errorf("Expected math category to stay disabled, got %q", out)
	}
}
