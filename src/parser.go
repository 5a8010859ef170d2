package aocscript

import (
	"sort"
	"strconv"
	"strings"
)

// Names bound by loop constructs while their body runs
const (
	IterName = "ITER"
	CharName = "CHAR"
	LineName = "LINE"
)

func isLoopBinding(name string) bool {
	return name == IterName || name == CharName || name == LineName
}

// SymbolTable records the lists declared and scalars assigned so far. The
// parser consults it to reject appends and indexed assignments to names
// that were never introduced. A REPL keeps one table across inputs.
type SymbolTable struct {
	lists   map[string]bool
	scalars map[string]bool
}

// NewSymbolTable creates an empty table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		lists:   make(map[string]bool),
		scalars: make(map[string]bool),
	}
}

// IsList reports whether name was declared as a list
func (s *SymbolTable) IsList(name string) bool { return s.lists[name] }

// IsScalar reports whether name was assigned as a scalar variable
func (s *SymbolTable) IsScalar(name string) bool { return s.scalars[name] || isLoopBinding(name) }

// Names returns every known name, sorted
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.lists)+len(s.scalars))
	for name := range s.lists {
		names = append(names, name)
	}
	for name := range s.scalars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the table
func (s *SymbolTable) Clone() *SymbolTable {
	c := NewSymbolTable()
	for name := range s.lists {
		c.lists[name] = true
	}
	for name := range s.scalars {
		c.scalars[name] = true
	}
	return c
}

func (s *SymbolTable) listNames() []string {
	names := make([]string, 0, len(s.lists))
	for name := range s.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parser builds a Program from a token stream by recursive descent.
// Precedence, loosest first: Expression (comparisons and is DIGIT/ALPHA),
// Logic (+ -), Term (* / modulo and as), Factor.
type Parser struct {
	lex     *Lexer
	symbols *SymbolTable
	logger  *Logger
	// loopDepth counts the loop bodies enclosing the current statement
	loopDepth int
}

// NewParser creates a parser reading from lex. symbols may be nil.
func NewParser(lex *Lexer, symbols *SymbolTable) *Parser {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Parser{lex: lex, symbols: symbols}
}

// SetLogger enables debug output of parsed statements
func (p *Parser) SetLogger(logger *Logger) {
	p.logger = logger
}

// Parse parses statements until the end of input. The first lex or syntax
// error aborts parsing and is returned.
func (p *Parser) Parse() (*Program, error) {
	program := &Program{}
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEnd {
			return program, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if p.logger != nil {
			p.logger.DebugCat(CatParse, "line %d: %s", stmt.Position.Line, stmt)
		}
		program.Statements = append(program.Statements, stmt)
	}
}

// ParseString lexes and parses a complete script
func ParseString(source, filename string) (*Program, error) {
	lex, err := NewLexer(source, filename)
	if err != nil {
		return nil, err
	}
	return NewParser(lex, nil).Parse()
}

func (p *Parser) next() (Token, error) { return p.lex.Next() }

func (p *Parser) peek() (Token, error) { return p.lex.Peek() }

func (p *Parser) peekIs(types ...TokenType) (bool, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if tok.Type == t {
			return true, nil
		}
	}
	return false, nil
}

// expect consumes the next token, which must be of type t
func (p *Parser) expect(t TokenType, expected string) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != t {
		return tok, p.syntaxError(tok, expected, "")
	}
	return tok, nil
}

func (p *Parser) syntaxError(tok Token, expected, detail string) *SyntaxError {
	pos := tok.Position
	return &SyntaxError{
		Unexpected: tok.Describe(),
		Expected:   expected,
		Line:       p.lex.Line(pos.Line),
		Position:   &pos,
		Detail:     detail,
		AtEnd:      tok.Type == TokenEnd,
	}
}

// statement parses one statement and its terminating semicolon
func (p *Parser) statement() (*Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var body Node
	switch tok.Type {
	case TokenID:
		body, err = p.assignment()
	case TokenPrint:
		body, err = p.print()
	case TokenLoad:
		body, err = p.load()
	case TokenIf:
		body, err = p.ifStatement()
	case TokenLoop:
		body, err = p.loop()
	case TokenAssert:
		body, err = p.assert()
	case TokenSorted, TokenUnsorted:
		body, err = p.listDeclaration()
	case TokenBreak:
		_ = p.lex.Consume()
		if p.loopDepth == 0 {
			return nil, p.syntaxError(tok, "statement", "break outside of a loop")
		}
		body = &Break{nodeBase{tok.Position}}
	default:
		_ = p.lex.Consume()
		return nil, p.syntaxError(tok, "statement", "")
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}
	return &Statement{nodeBase: nodeBase{tok.Position}, Body: body}, nil
}

// block parses statements until one of the closing keywords, which is left
// unconsumed
func (p *Parser) block(expected string, closers ...TokenType) ([]*Statement, error) {
	var body []*Statement
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		for _, c := range closers {
			if tok.Type == c {
				return body, nil
			}
		}
		if tok.Type == TokenEnd {
			return nil, p.syntaxError(tok, expected, "")
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func (p *Parser) assignment() (Node, error) {
	name, err := p.next()
	if err != nil {
		return nil, err
	}
	op, err := p.next()
	if err != nil {
		return nil, err
	}

	switch op.Type {
	case TokenAssign:
		if p.symbols.IsList(name.Value) {
			return nil, p.syntaxError(name, "variable", "cannot assign to list "+name.Value+", use << or an index")
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.symbols.scalars[name.Value] = true
		return &Assignment{nodeBase{name.Position}, name.Value, value}, nil

	case TokenLBracket:
		if !p.symbols.IsList(name.Value) && !p.symbols.IsScalar(name.Value) {
			return nil, p.syntaxError(name, "declared list or string variable",
				"undeclared "+name.Value+didYouMean(name.Value, p.symbols.Names()))
		}
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket, "']'"); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenAssign, "'='"); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &IndexedAssignment{nodeBase{name.Position}, name.Value, index, value}, nil

	case TokenAppend:
		if !p.symbols.IsList(name.Value) {
			return nil, p.syntaxError(name, "declared list",
				"undeclared list "+name.Value+didYouMean(name.Value, p.symbols.listNames()))
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ListAppend{nodeBase{name.Position}, name.Value, value}, nil
	}
	return nil, p.syntaxError(op, "'=', '[' or '<<'", "")
}

func (p *Parser) print() (Node, error) {
	keyword, err := p.next()
	if err != nil {
		return nil, err
	}
	first, err := p.lex.PeekAt(0)
	if err != nil {
		return nil, err
	}
	second, err := p.lex.PeekAt(1)
	if err != nil {
		return nil, err
	}

	if second.Type == TokenSemicolon {
		switch first.Type {
		case TokenID:
			_ = p.lex.Consume()
			return &PrintIdentifier{nodeBase{keyword.Position}, first.Value}, nil
		case TokenDay:
			_ = p.lex.Consume()
			return &PrintDay{nodeBase{keyword.Position}}, nil
		}
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &PrintString{nodeBase{keyword.Position}, value}, nil
}

func (p *Parser) load() (Node, error) {
	keyword, err := p.next()
	if err != nil {
		return nil, err
	}
	path, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &Load{nodeBase{keyword.Position}, path}, nil
}

func (p *Parser) ifStatement() (Node, error) {
	keyword, err := p.next()
	if err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':' after if condition"); err != nil {
		return nil, err
	}
	thenBody, err := p.block("else", TokenElse)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenElse, "else"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':' after else"); err != nil {
		return nil, err
	}
	elseBody, err := p.block("end", TokenEndIf)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEndIf, "end"); err != nil {
		return nil, err
	}
	return &If{nodeBase{keyword.Position}, condition, thenBody, elseBody}, nil
}

// loop parses the three loop forms, told apart by the two tokens after
// the loop keyword
func (p *Parser) loop() (Node, error) {
	keyword, err := p.next()
	if err != nil {
		return nil, err
	}
	first, err := p.lex.PeekAt(0)
	if err != nil {
		return nil, err
	}
	second, err := p.lex.PeekAt(1)
	if err != nil {
		return nil, err
	}

	pos := nodeBase{keyword.Position}
	switch {
	case first.Type == TokenDay && second.Type == TokenLines:
		_ = p.lex.Consume()
		_ = p.lex.Consume()
		body, err := p.loopBody()
		if err != nil {
			return nil, err
		}
		return &LoopLines{pos, body}, nil

	case first.Type == TokenID && second.Type == TokenChars:
		_ = p.lex.Consume()
		_ = p.lex.Consume()
		body, err := p.loopBody()
		if err != nil {
			return nil, err
		}
		return &LoopChars{pos, first.Value, body}, nil
	}

	count, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenTimes, "times, chars or lines"); err != nil {
		return nil, err
	}
	body, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	return &LoopTimes{pos, count, body}, nil
}

func (p *Parser) loopBody() ([]*Statement, error) {
	if _, err := p.expect(TokenColon, "':' before loop body"); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.block("loopstop", TokenLoopStop)
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLoopStop, "loopstop"); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) assert() (Node, error) {
	keyword, err := p.next()
	if err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':' after assert condition"); err != nil {
		return nil, err
	}
	message, err := p.expect(TokenString, "assert message string")
	if err != nil {
		return nil, err
	}
	return &Assert{nodeBase{keyword.Position}, condition, unquote(message.Value)}, nil
}

func (p *Parser) listDeclaration() (Node, error) {
	order, err := p.next()
	if err != nil {
		return nil, err
	}
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}
	kind, ok := kindFromToken(typeTok.Type)
	if !ok {
		return nil, p.syntaxError(typeTok, "INT, STRING or FLOAT", "")
	}
	if _, err := p.expect(TokenList, "list"); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenID, "list name")
	if err != nil {
		return nil, err
	}
	if p.symbols.IsList(name.Value) {
		return nil, p.syntaxError(name, "new list name", "list "+name.Value+" is already declared")
	}
	if p.symbols.IsScalar(name.Value) {
		return nil, p.syntaxError(name, "new list name", name.Value+" is already a variable")
	}
	p.symbols.lists[name.Value] = true
	return &ListDeclare{nodeBase{order.Position}, name.Value, kind, order.Type == TokenSorted}, nil
}

// expression parses Logic followed by either a comparison chain or a
// single is DIGIT / is ALPHA predicate
func (p *Parser) expression() (Node, error) {
	left, err := p.logic()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case TokenIsDigit:
		_ = p.lex.Consume()
		return &IsDigit{nodeBase{tok.Position}, left}, nil
	case TokenIsAlpha:
		_ = p.lex.Consume()
		return &IsAlpha{nodeBase{tok.Position}, left}, nil
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual, TokenEqual, TokenNotEqual:
		default:
			return left, nil
		}
		_ = p.lex.Consume()
		right, err := p.logic()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{nodeBase{tok.Position}, tok.Type, left, right}
	}
}

func (p *Parser) logic() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != TokenPlus && tok.Type != TokenMinus {
			return left, nil
		}
		_ = p.lex.Consume()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{nodeBase{tok.Position}, tok.Type, left, right}
	}
}

// term parses a Factor followed by one cast, or by a chain of * / modulo
func (p *Parser) term() (Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}

	isCast, err := p.peekIs(TokenAs)
	if err != nil {
		return nil, err
	}
	if isCast {
		as, _ := p.next()
		typeTok, err := p.next()
		if err != nil {
			return nil, err
		}
		kind, ok := kindFromToken(typeTok.Type)
		if !ok {
			return nil, p.syntaxError(typeTok, "INT, STRING or FLOAT", "")
		}
		return &Cast{nodeBase{as.Position}, left, kind}, nil
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != TokenStar && tok.Type != TokenSlash && tok.Type != TokenModulo {
			return left, nil
		}
		_ = p.lex.Consume()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{nodeBase{tok.Position}, tok.Type, left, right}
	}
}

func (p *Parser) factor() (Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	pos := nodeBase{tok.Position}

	switch tok.Type {
	case TokenInteger:
		n, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			return nil, p.syntaxError(tok, "integer", "literal does not fit in 32 bits")
		}
		return &IntegerLiteral{pos, int32(n)}, nil

	case TokenReal:
		f, err := strconv.ParseFloat(tok.Value, 32)
		if err != nil {
			return nil, p.syntaxError(tok, "real number", "literal out of range")
		}
		return &RealLiteral{pos, float32(f)}, nil

	case TokenString:
		return &StringLiteral{pos, unquote(tok.Value)}, nil

	case TokenDay:
		return &DayText{pos}, nil

	case TokenID:
		suffix, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch suffix.Type {
		case TokenLBracket:
			_ = p.lex.Consume()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRBracket, "']'"); err != nil {
				return nil, err
			}
			return &ArrayIndex{pos, tok.Value, index}, nil
		case TokenSize:
			_ = p.lex.Consume()
			return &ArraySize{pos, tok.Value}, nil
		}
		return &Identifier{pos, tok.Value}, nil

	case TokenLParen:
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case TokenMinus:
		// -INTEGER is one literal so the INT minimum is writable
		if ok, err := p.peekIs(TokenInteger); err != nil {
			return nil, err
		} else if ok {
			digits, _ := p.next()
			n, err := strconv.ParseInt("-"+digits.Value, 10, 32)
			if err != nil {
				return nil, p.syntaxError(digits, "integer", "literal does not fit in 32 bits")
			}
			return &IntegerLiteral{pos, int32(n)}, nil
		}
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &Negate{pos, operand}, nil
	}

	return nil, p.syntaxError(tok, "expression", "")
}

func unquote(lexeme string) string {
	return strings.TrimSuffix(strings.TrimPrefix(lexeme, `"`), `"`)
}
