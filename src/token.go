package aocscript

import "fmt"

// TokenType is the lexical category of a token
type TokenType int

const (
	TokenEnd TokenType = iota

	// literals
	TokenInteger
	TokenReal
	TokenString
	TokenID

	// keywords
	TokenPrint
	TokenLoad
	TokenIf
	TokenElse
	TokenEndIf
	TokenLoop
	TokenTimes
	TokenChars
	TokenLines
	TokenLoopStop
	TokenAssert
	TokenBreak
	TokenSorted
	TokenUnsorted
	TokenList
	TokenAs
	TokenModulo
	TokenSize
	TokenIsDigit
	TokenIsAlpha
	TokenDay
	TokenTypeInt
	TokenTypeString
	TokenTypeFloat

	// operators and punctuation
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenAssign
	TokenAppend
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenSemicolon
)

var tokenNames = map[TokenType]string{
	TokenEnd:          "END",
	TokenInteger:      "INTEGER",
	TokenReal:         "REAL",
	TokenString:       "STRING_LITERAL",
	TokenID:           "ID",
	TokenPrint:        "PRINT",
	TokenLoad:         "LOAD",
	TokenIf:           "IF",
	TokenElse:         "ELSE",
	TokenEndIf:        "ENDIF",
	TokenLoop:         "LOOP",
	TokenTimes:        "TIMES",
	TokenChars:        "CHARS",
	TokenLines:        "LINES",
	TokenLoopStop:     "LOOPSTOP",
	TokenAssert:       "ASSERT",
	TokenBreak:        "BREAK",
	TokenSorted:       "SORTED",
	TokenUnsorted:     "UNSORTED",
	TokenList:         "LIST",
	TokenAs:           "AS",
	TokenModulo:       "MODULO",
	TokenSize:         "SIZE",
	TokenIsDigit:      "IS_DIGIT",
	TokenIsAlpha:      "IS_ALPHA",
	TokenDay:          "DAY",
	TokenTypeInt:      "TYPE_INT",
	TokenTypeString:   "TYPE_STRING",
	TokenTypeFloat:    "TYPE_FLOAT",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenStar:         "MULTIPLY",
	TokenSlash:        "DIVIDE",
	TokenAssign:       "EQUALS",
	TokenAppend:       "APPEND",
	TokenEqual:        "EQUALS_EQUALS",
	TokenNotEqual:     "NOT_EQUALS",
	TokenLess:         "LESS",
	TokenLessEqual:    "LESS_EQUALS",
	TokenGreater:      "GREATER",
	TokenGreaterEqual: "GREATER_EQUALS",
	TokenLParen:       "LPAREN",
	TokenRParen:       "RPAREN",
	TokenLBracket:     "LBRACKET",
	TokenRBracket:     "RBRACKET",
	TokenColon:        "COLON",
	TokenSemicolon:    "SEMICOLON",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsTypeName reports whether the token names a value type
func (t TokenType) IsTypeName() bool {
	return t == TokenTypeInt || t == TokenTypeString || t == TokenTypeFloat
}

// Token is one lexeme produced by the Lexer
type Token struct {
	Type     TokenType
	Value    string
	Position SourcePosition
}

// Describe returns a human readable description for error messages
func (t Token) Describe() string {
	switch t.Type {
	case TokenEnd:
		return "end of input"
	case TokenID, TokenInteger, TokenReal:
		return fmt.Sprintf("%s '%s'", t.Type, t.Value)
	case TokenString:
		return fmt.Sprintf("string %s", t.Value)
	default:
		return fmt.Sprintf("'%s'", t.Value)
	}
}

func (t Token) String() string {
	switch t.Type {
	case TokenInteger, TokenReal, TokenString, TokenID:
		return fmt.Sprintf("%s:%s", t.Type, t.Value)
	}
	return t.Type.String()
}
