package aocscript

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string) *Program {
	t.Helper()
	program, err := ParseString(source, "test.aoc")
	if err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	return program
}

func expectSyntaxError(t *testing.T, source string) *SyntaxError {
	t.Helper()
	_, err := ParseString(source, "test.aoc")
	if err == nil {
		t.Fatalf("Expected a syntax error for %q", source)
	}
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError for %q, got %T: %v", source, err, err)
	}
	return syntaxErr
}

func TestParseExpressionShapes(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"x = 1 + 2 * 3;", "x = (1 + (2 * 3));"},
		{"x = 10 - 3 - 2;", "x = ((10 - 3) - 2);"},
		{"x = (1 + 2) * 3;", "x = ((1 + 2) * 3);"},
		{"x = 7 modulo 4 * 2;", "x = ((7 modulo 4) * 2);"},
		{"x = 1 + y as INT;", "x = (1 + (y as INT));"},
		{"x = a < b == 1;", "x = ((a < b) == 1);"},
		{"x = -2 * 3;", "x = (-2 * 3);"},
		{"x = -2147483648;", "x = -2147483648;"},
		{"x = -(2);", "x = -2;"},
		{"x = \"12\" is DIGIT;", "x = \"12\" is DIGIT;"},
		{"x = 2.5 * 2.0;", "x = (2.5 * 2);"},
	}

	for _, tt := range tests {
		program := mustParse(t, tt.source)
		if got := program.String(); got != tt.want {
			t.Errorf("Parsing %q: expected %q, got %q", tt.source, tt.want, got)
		}
	}
}

func TestParsePrintForms(t *testing.T) {
	program := mustParse(t, `x = 1; print x; print x + 1; print DAY; simon says "hi";`)
	if len(program.Statements) != 5 {
		t.Fatalf("Expected 5 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[1].Body.(*PrintIdentifier); !ok {
		t.Errorf("Expected PrintIdentifier, got %T", program.Statements[1].Body)
	}
	if _, ok := program.Statements[2].Body.(*PrintString); !ok {
		t.Errorf("Expected PrintString, got %T", program.Statements[2].Body)
	}
	if _, ok := program.Statements[3].Body.(*PrintDay); !ok {
		t.Errorf("Expected PrintDay, got %T", program.Statements[3].Body)
	}
	if p, ok := program.Statements[4].Body.(*PrintString); !ok {
		t.Errorf("Expected PrintString, got %T", program.Statements[4].Body)
	} else if lit, ok := p.Value.(*StringLiteral); !ok || lit.Value != "hi" {
		t.Errorf("Expected string literal hi, got %v", p.Value)
	}
}

func TestParseLoopForms(t *testing.T) {
	program := mustParse(t, `
s = "abc";
loop DAY lines: print LINE; loopstop;
loop s chars: print CHAR; loopstop;
loop 3 times: break; loopstop;
loop s size times: loopstop;
`)
	if len(program.Statements) != 5 {
		t.Fatalf("Expected 5 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[1].Body.(*LoopLines); !ok {
		t.Errorf("Expected LoopLines, got %T", program.Statements[1].Body)
	}
	if loop, ok := program.Statements[2].Body.(*LoopChars); !ok {
		t.Errorf("Expected LoopChars, got %T", program.Statements[2].Body)
	} else if loop.Name != "s" {
		t.Errorf("Expected loop over s, got %s", loop.Name)
	}
	if loop, ok := program.Statements[3].Body.(*LoopTimes); !ok {
		t.Errorf("Expected LoopTimes, got %T", program.Statements[3].Body)
	} else if len(loop.Body) != 1 {
		t.Errorf("Expected 1 body statement, got %d", len(loop.Body))
	}
	if loop, ok := program.Statements[4].Body.(*LoopTimes); !ok {
		t.Errorf("Expected LoopTimes, got %T", program.Statements[4].Body)
	} else if _, ok := loop.Count.(*ArraySize); !ok {
		t.Errorf("Expected size count, got %T", loop.Count)
	}
}

func TestParseIfElse(t *testing.T) {
	program := mustParse(t, "x = 1; if x > 0: print x; else: end;")
	node, ok := program.Statements[1].Body.(*If)
	if !ok {
		t.Fatalf("Expected If, got %T", program.Statements[1].Body)
	}
	if len(node.Then) != 1 || len(node.Else) != 0 {
		t.Errorf("Expected 1 then and 0 else statements, got %d and %d", len(node.Then), len(node.Else))
	}
	if got := node.String(); got != "if (x > 0): print x; else:  end" {
		t.Errorf("Unexpected rendering %q", got)
	}
}

func TestParseListStatements(t *testing.T) {
	program := mustParse(t, `
sorted INT list nums;
unsorted STRING list words;
nums << 4;
nums[0] = 2;
words << "a";
n = nums size;
`)
	decl, ok := program.Statements[0].Body.(*ListDeclare)
	if !ok {
		t.Fatalf("Expected ListDeclare, got %T", program.Statements[0].Body)
	}
	if !decl.Sorted || decl.Elem != KindInteger || decl.Name != "nums" {
		t.Errorf("Unexpected declaration %s", decl)
	}
	if _, ok := program.Statements[2].Body.(*ListAppend); !ok {
		t.Errorf("Expected ListAppend, got %T", program.Statements[2].Body)
	}
	if _, ok := program.Statements[3].Body.(*IndexedAssignment); !ok {
		t.Errorf("Expected IndexedAssignment, got %T", program.Statements[3].Body)
	}
}

func TestParseIndexedAssignmentToString(t *testing.T) {
	mustParse(t, `s = "abc"; s[0] = "x";`)
	mustParse(t, `loop 2 times: ITER[0] = 1; loopstop;`)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		detail string
	}{
		{"append to undeclared list", "nums << 1;", "undeclared list nums"},
		{"index undeclared name", "q[0] = 1;", "undeclared q"},
		{"break outside loop", "break;", "break outside of a loop"},
		{"duplicate list", "sorted INT list a; unsorted INT list a;", "already declared"},
		{"list over variable", "a = 1; sorted INT list a;", "already a variable"},
		{"assign to list", "sorted INT list a; a = 1;", "cannot assign to list a"},
		{"literal too large", "x = 99999999999;", "32 bits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := expectSyntaxError(t, tt.source)
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("Expected error containing %q, got %q", tt.detail, err.Error())
			}
		})
	}
}

func TestSyntaxErrorSuggestsListName(t *testing.T) {
	err := expectSyntaxError(t, "unsorted INT list numbers; numbrs << 1;")
	if !strings.Contains(err.Error(), "did you mean numbers?") {
		t.Errorf("Expected suggestion, got %q", err.Error())
	}
}

func TestSyntaxErrorAtEnd(t *testing.T) {
	incomplete := []string{
		"x = 1",
		"loop 3 times: print ITER;",
		"if 1: print 1; else:",
		"x = 1 +",
	}
	for _, source := range incomplete {
		if err := expectSyntaxError(t, source); !err.AtEnd {
			t.Errorf("Expected %q to stop at end of input, got %v", source, err)
		}
	}

	for _, source := range []string{"x = ;", "print print;", "else;"} {
		if err := expectSyntaxError(t, source); err.AtEnd {
			t.Errorf("Expected %q to fail before end of input", source)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	err := expectSyntaxError(t, "x = 1;\ny = 2 3;")
	if err.Position.Line != 2 || err.Position.Column != 7 {
		t.Errorf("Expected position 2:7, got %d:%d", err.Position.Line, err.Position.Column)
	}
	if err.Line != "y = 2 3;" {
		t.Errorf("Expected source line, got %q", err.Line)
	}
	if err.Expected != "';'" {
		t.Errorf("Expected ';' to be expected, got %q", err.Expected)
	}
}

func TestParserSymbolTablePersists(t *testing.T) {
	symbols := NewSymbolTable()

	lex, _ := NewLexer("sorted INT list xs;", "")
	if _, err := NewParser(lex, symbols).Parse(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !symbols.IsList("xs") {
		t.Fatal("Expected xs to be recorded as a list")
	}

	lex, _ = NewLexer("xs << 1;", "")
	if _, err := NewParser(lex, symbols).Parse(); err != nil {
		t.Errorf("Expected append to succeed with shared symbols, got %v", err)
	}

	clone := symbols.Clone()
	clone.lists["ys"] = true
	if symbols.IsList("ys") {
		t.Error("Clone shares state with original")
	}
}
