package aocscript

import (
	"fmt"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// lexRule is one entry of the ordered token table. Rules are tried in
// order and the first match wins, so multi-word and longer keywords sit
// above the identifier and single-character rules they would otherwise
// lose to.
type lexRule struct {
	name    string
	pattern string
	kind    TokenType
	skip    bool
}

var lexRules = []lexRule{
	{"Whitespace", `[ \t\r\n]+`, TokenEnd, true},
	{"Comment", `//[^\n]*`, TokenEnd, true},

	{"IsDigit", `is[ \t]+DIGIT\b`, TokenIsDigit, false},
	{"IsAlpha", `is[ \t]+ALPHA\b`, TokenIsAlpha, false},
	{"Print", `(?:simon[ \t]+says|print)\b`, TokenPrint, false},
	{"LoopStop", `loopstop\b`, TokenLoopStop, false},
	{"Loop", `loop\b`, TokenLoop, false},
	{"Load", `load\b`, TokenLoad, false},
	{"If", `if\b`, TokenIf, false},
	{"Else", `else\b`, TokenElse, false},
	{"End", `end\b`, TokenEndIf, false},
	{"Times", `times\b`, TokenTimes, false},
	{"Chars", `chars\b`, TokenChars, false},
	{"Lines", `lines\b`, TokenLines, false},
	{"Assert", `assert\b`, TokenAssert, false},
	{"Break", `break\b`, TokenBreak, false},
	{"Unsorted", `unsorted\b`, TokenUnsorted, false},
	{"Sorted", `sorted\b`, TokenSorted, false},
	{"List", `list\b`, TokenList, false},
	{"As", `as\b`, TokenAs, false},
	{"Modulo", `modulo\b`, TokenModulo, false},
	{"Size", `size\b`, TokenSize, false},
	{"Day", `DAY\b`, TokenDay, false},
	{"TypeInt", `INT\b`, TokenTypeInt, false},
	{"TypeString", `STRING\b`, TokenTypeString, false},
	{"TypeFloat", `FLOAT\b`, TokenTypeFloat, false},

	{"Real", `[0-9]+\.[0-9]+`, TokenReal, false},
	{"Integer", `[0-9]+`, TokenInteger, false},
	{"String", `"[^"\n]*"`, TokenString, false},
	{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, TokenID, false},

	{"Append", `<<`, TokenAppend, false},
	{"LessEqual", `<=`, TokenLessEqual, false},
	{"GreaterEqual", `>=`, TokenGreaterEqual, false},
	{"Equal", `==`, TokenEqual, false},
	{"NotEqual", `!=`, TokenNotEqual, false},
	{"Less", `<`, TokenLess, false},
	{"Greater", `>`, TokenGreater, false},
	{"Assign", `=`, TokenAssign, false},
	{"Plus", `\+`, TokenPlus, false},
	{"Minus", `-`, TokenMinus, false},
	{"Star", `\*`, TokenStar, false},
	{"Slash", `/`, TokenSlash, false},
	{"LParen", `\(`, TokenLParen, false},
	{"RParen", `\)`, TokenRParen, false},
	{"LBracket", `\[`, TokenLBracket, false},
	{"RBracket", `\]`, TokenRBracket, false},
	{"Colon", `:`, TokenColon, false},
	{"Semicolon", `;`, TokenSemicolon, false},
}

var (
	scriptLexer = buildScriptLexer()
	// ruleByType maps participle token types back to the rule that produced them
	ruleByType = buildRuleIndex()
)

func buildScriptLexer() *plexer.StatefulDefinition {
	rules := make([]plexer.SimpleRule, 0, len(lexRules))
	for _, r := range lexRules {
		rules = append(rules, plexer.SimpleRule{Name: r.name, Pattern: r.pattern})
	}
	return plexer.MustSimple(rules)
}

func buildRuleIndex() map[plexer.TokenType]lexRule {
	symbols := scriptLexer.Symbols()
	index := make(map[plexer.TokenType]lexRule, len(lexRules))
	for _, r := range lexRules {
		index[symbols[r.name]] = r
	}
	return index
}

// Lexer produces tokens from script source on demand. It supports
// consuming the next token, peeking without consuming, and consuming a
// previously peeked token.
type Lexer struct {
	source   string
	filename string
	lines    []string
	lex      plexer.Lexer
	// lookahead holds tokens scanned by Peek but not yet consumed
	lookahead []Token
	// offset is the byte offset just past the last scanned token
	offset int
	done   bool
	logger *Logger
}

// NewLexer creates a lexer over source. filename is only used in positions.
func NewLexer(source, filename string) (*Lexer, error) {
	lex, err := scriptLexer.LexString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return &Lexer{
		source:   source,
		filename: filename,
		lines:    strings.Split(source, "\n"),
		lex:      lex,
	}, nil
}

// SetLogger enables trace output of scanned tokens
func (l *Lexer) SetLogger(logger *Logger) {
	l.logger = logger
}

// Lines returns the source split into lines, for error context
func (l *Lexer) Lines() []string {
	return l.lines
}

// Line returns the 1-based source line n, or "" when out of range
func (l *Lexer) Line(n int) string {
	if n < 1 || n > len(l.lines) {
		return ""
	}
	return strings.TrimRight(l.lines[n-1], "\r")
}

// Next consumes and returns the next token
func (l *Lexer) Next() (Token, error) {
	if len(l.lookahead) > 0 {
		tok := l.lookahead[0]
		l.lookahead = l.lookahead[1:]
		return tok, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it
func (l *Lexer) Peek() (Token, error) {
	return l.PeekAt(0)
}

// PeekAt returns the token n positions ahead (0 is the next token) without
// consuming anything
func (l *Lexer) PeekAt(n int) (Token, error) {
	for len(l.lookahead) <= n {
		tok, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.lookahead = append(l.lookahead, tok)
		if tok.Type == TokenEnd {
			break
		}
	}
	if n >= len(l.lookahead) {
		return l.lookahead[len(l.lookahead)-1], nil
	}
	return l.lookahead[n], nil
}

// Consume drops the next token, normally one already returned by Peek
func (l *Lexer) Consume() error {
	_, err := l.Next()
	return err
}

// scan reads one significant token from the underlying lexer
func (l *Lexer) scan() (Token, error) {
	if l.done {
		return l.endToken(), nil
	}
	for {
		ptok, err := l.lex.Next()
		if err != nil {
			return Token{}, l.lexError()
		}
		if ptok.Type == plexer.EOF {
			l.done = true
			return l.endToken(), nil
		}

		l.offset = ptok.Pos.Offset + len(ptok.Value)
		rule, ok := ruleByType[ptok.Type]
		if !ok {
			return Token{}, l.lexError()
		}
		if rule.skip {
			continue
		}

		tok := Token{
			Type:  rule.kind,
			Value: ptok.Value,
			Position: SourcePosition{
				Line:     ptok.Pos.Line,
				Column:   ptok.Pos.Column,
				Length:   len(ptok.Value),
				Filename: l.filename,
			},
		}
		if l.logger != nil {
			l.logger.TraceCat(CatLex, "%s at %d:%d", tok, tok.Position.Line, tok.Position.Column)
		}
		return tok, nil
	}
}

func (l *Lexer) endToken() Token {
	line, col := l.lineColumn(len(l.source))
	return Token{
		Type:     TokenEnd,
		Position: SourcePosition{Line: line, Column: col, Filename: l.filename},
	}
}

// lexError describes the unmatched input starting at the current offset
func (l *Lexer) lexError() *LexError {
	rest := l.source[l.offset:]
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	start := l.offset + len(rest) - len(trimmed)
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		trimmed = trimmed[:i]
	}
	line, col := l.lineColumn(start)
	return &LexError{
		Remainder: strings.TrimRight(trimmed, "\r"),
		Line:      l.Line(line - 1),
		Position: &SourcePosition{
			Line:     line,
			Column:   col,
			Length:   1,
			Filename: l.filename,
		},
	}
}

func (l *Lexer) lineColumn(offset int) (int, int) {
	if offset > len(l.source) {
		offset = len(l.source)
	}
	before := l.source[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return line, col
}

// Tokenize scans the whole source, returning every token up to and
// including the end token
func Tokenize(source, filename string) ([]Token, error) {
	lex, err := NewLexer(source, filename)
	if err != nil {
		return nil, err
	}
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEnd {
			return tokens, nil
		}
	}
}
