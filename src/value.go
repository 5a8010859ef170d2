package aocscript

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind is the runtime type tag of a Value
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindText
	KindReal
)

func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "INT"
	case KindText:
		return "STRING"
	case KindReal:
		return "FLOAT"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// kindFromToken maps a type-name token to its ValueKind
func kindFromToken(t TokenType) (ValueKind, bool) {
	switch t {
	case TokenTypeInt:
		return KindInteger, true
	case TokenTypeString:
		return KindText, true
	case TokenTypeFloat:
		return KindReal, true
	}
	return KindInteger, false
}

// Value is a typed runtime value: a 32-bit integer, a string or a 32-bit
// float. The zero Value is Integer 0. Values are copied, never shared.
type Value struct {
	kind ValueKind
	i    int32
	s    string
	f    float32
}

// IntegerValue creates an Integer value
func IntegerValue(i int32) Value { return Value{kind: KindInteger, i: i} }

// TextValue creates a Text value
func TextValue(s string) Value { return Value{kind: KindText, s: s} }

// RealValue creates a Real value
func RealValue(f float32) Value { return Value{kind: KindReal, f: f} }

func boolValue(b bool) Value {
	if b {
		return IntegerValue(1)
	}
	return IntegerValue(0)
}

// Kind returns the type tag
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the integer payload; zero for other kinds
func (v Value) Int() int32 { return v.i }

// Text returns the string payload; empty for other kinds
func (v Value) Text() string { return v.s }

// Real returns the float payload; zero for other kinds
func (v Value) Real() float32 { return v.f }

// SortPriority is the integer used to order values of different kinds:
// the integer itself, the length of a string, or the truncated float.
func (v Value) SortPriority() int32 {
	switch v.kind {
	case KindText:
		return int32(len(v.s))
	case KindReal:
		return int32(v.f)
	default:
		return v.i
	}
}

// Compare orders two values. Strings compare lexicographically, numbers of
// the same kind numerically, and anything else by SortPriority.
func (v Value) Compare(other Value) int {
	if v.kind == other.kind {
		switch v.kind {
		case KindText:
			return strings.Compare(v.s, other.s)
		case KindReal:
			return cmp.Compare(v.f, other.f)
		default:
			return cmp.Compare(v.i, other.i)
		}
	}
	return cmp.Compare(v.SortPriority(), other.SortPriority())
}

// String renders the value as plain text, the same text a cast to STRING
// produces
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindReal:
		return strconv.FormatFloat(float64(v.f), 'f', -1, 32)
	default:
		return strconv.FormatInt(int64(v.i), 10)
	}
}

// Format renders the value for print: integers plain, floats with two
// decimals, strings single-quoted
func (v Value) Format() string {
	switch v.kind {
	case KindText:
		return "'" + v.s + "'"
	case KindReal:
		return strconv.FormatFloat(float64(v.f), 'f', 2, 32)
	default:
		return strconv.FormatInt(int64(v.i), 10)
	}
}

// Cast converts the value to another kind
func (v Value) Cast(kind ValueKind) (Value, error) {
	if v.kind == kind {
		return v, nil
	}
	switch kind {
	case KindText:
		return TextValue(v.String()), nil
	case KindInteger:
		switch v.kind {
		case KindReal:
			return IntegerValue(int32(v.f)), nil
		case KindText:
			n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 32)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast %s to %s", v.Format(), kind)
			}
			return IntegerValue(int32(n)), nil
		}
	case KindReal:
		switch v.kind {
		case KindInteger:
			return RealValue(float32(v.i)), nil
		case KindText:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 32)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast %s to %s", v.Format(), kind)
			}
			return RealValue(float32(f)), nil
		}
	}
	return Value{}, fmt.Errorf("cannot cast %s to %s", v.kind, kind)
}

// IsDigit reports whether every character is an ASCII digit. Numbers are
// always digits; the empty string is not.
func (v Value) IsDigit() bool {
	if v.kind != KindText {
		return true
	}
	if v.s == "" {
		return false
	}
	for i := 0; i < len(v.s); i++ {
		if v.s[i] < '0' || v.s[i] > '9' {
			return false
		}
	}
	return true
}

// IsAlpha reports whether every character is an ASCII letter. Numbers are
// never alphabetic; the empty string is not.
func (v Value) IsAlpha() bool {
	if v.kind != KindText || v.s == "" {
		return false
	}
	for i := 0; i < len(v.s); i++ {
		c := v.s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// operatorSymbol names a binary operator in error messages
func operatorSymbol(op TokenType) string {
	switch op {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenModulo:
		return "modulo"
	case TokenEqual:
		return "=="
	case TokenNotEqual:
		return "!="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	}
	return op.String()
}

// applyBinary evaluates left op right. Both operands must have the same kind.
func applyBinary(op TokenType, left, right Value) (Value, error) {
	if left.kind != right.kind {
		return Value{}, fmt.Errorf("type mismatch: %s %s %s", left.kind, operatorSymbol(op), right.kind)
	}

	switch op {
	case TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual:
		return compareValues(op, left, right), nil
	}

	switch left.kind {
	case KindInteger:
		return integerArithmetic(op, left.i, right.i)
	case KindReal:
		return realArithmetic(op, left.f, right.f)
	default:
		if op == TokenPlus {
			return TextValue(left.s + right.s), nil
		}
	}
	return Value{}, fmt.Errorf("operator %s is not defined for %s", operatorSymbol(op), left.kind)
}

func compareValues(op TokenType, left, right Value) Value {
	c := left.Compare(right)
	switch op {
	case TokenEqual:
		return boolValue(c == 0)
	case TokenNotEqual:
		return boolValue(c != 0)
	case TokenLess:
		return boolValue(c < 0)
	case TokenLessEqual:
		return boolValue(c <= 0)
	case TokenGreater:
		return boolValue(c > 0)
	default:
		return boolValue(c >= 0)
	}
}

func integerArithmetic(op TokenType, a, b int32) (Value, error) {
	switch op {
	case TokenPlus:
		return IntegerValue(a + b), nil
	case TokenMinus:
		return IntegerValue(a - b), nil
	case TokenStar:
		return IntegerValue(a * b), nil
	case TokenSlash:
		if b == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return IntegerValue(a / b), nil
	case TokenModulo:
		if b == 0 {
			return Value{}, fmt.Errorf("modulo by zero")
		}
		return IntegerValue(a % b), nil
	}
	return Value{}, fmt.Errorf("operator %s is not defined for %s", operatorSymbol(op), KindInteger)
}

func realArithmetic(op TokenType, a, b float32) (Value, error) {
	switch op {
	case TokenPlus:
		return RealValue(a + b), nil
	case TokenMinus:
		return RealValue(a - b), nil
	case TokenStar:
		return RealValue(a * b), nil
	case TokenSlash:
		if b == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return RealValue(a / b), nil
	}
	return Value{}, fmt.Errorf("operator %s is not defined for %s", operatorSymbol(op), KindReal)
}
