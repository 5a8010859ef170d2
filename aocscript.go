// Package aocscript provides an interpreter for AoC script, a small language
// for puzzle-input processing, that can be embedded in Go applications.
//
// This package re-exports the public API from the implementation in src/.
// For full documentation, see the implementation package.
//
// Basic usage:
//
//	in := aocscript.New(aocscript.DefaultConfig())
//	source := `x = 5; y = x + 3; print y;`
//	if err := in.Run(source, "inline.aoc"); err != nil {
//		in.ReportError(err, source)
//	}
package aocscript

import (
	impl "github.com/phroun/aocscript/src"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Interpreter parses and runs scripts against one environment.
type Interpreter = impl.Interpreter

// Config holds configuration options for the interpreter.
type Config = impl.Config

// ColorMode selects when ANSI colors are written.
type ColorMode = impl.ColorMode

// Environment is the runtime state of a script run.
type Environment = impl.Environment

// Value is a typed runtime value (INT, STRING or FLOAT).
type Value = impl.Value

// ValueKind is the type tag of a Value.
type ValueKind = impl.ValueKind

// List is a declared, typed, optionally sorted list.
type List = impl.List

// =============================================================================
// SYNTAX
// =============================================================================

// Token is one lexeme.
type Token = impl.Token

// TokenType is the lexical category of a token.
type TokenType = impl.TokenType

// Program is a parsed script.
type Program = impl.Program

// Node is any syntax tree node.
type Node = impl.Node

// SourcePosition tracks location in source code for error reporting.
type SourcePosition = impl.SourcePosition

// =============================================================================
// ERRORS
// =============================================================================

// LexError reports input no token rule matches.
type LexError = impl.LexError

// SyntaxError reports a token the parser did not expect.
type SyntaxError = impl.SyntaxError

// RuntimeError reports a failure while evaluating a script.
type RuntimeError = impl.RuntimeError

// =============================================================================
// LOGGING
// =============================================================================

// Logger handles diagnostics.
type Logger = impl.Logger

// LogCategory names the subsystem a debug message comes from.
type LogCategory = impl.LogCategory

const (
	CatLex      = impl.CatLex
	CatParse    = impl.CatParse
	CatVariable = impl.CatVariable
	CatList     = impl.CatList
	CatFlow     = impl.CatFlow
	CatIO       = impl.CatIO
	CatMath     = impl.CatMath
	CatType     = impl.CatType
	CatSystem   = impl.CatSystem
)

const (
	KindInteger = impl.KindInteger
	KindText    = impl.KindText
	KindReal    = impl.KindReal
)

const (
	ColorAuto   = impl.ColorAuto
	ColorAlways = impl.ColorAlways
	ColorNever  = impl.ColorNever
)

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates a new interpreter.
func New(config *Config) *Interpreter {
	return impl.New(config)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return impl.DefaultConfig()
}

// LoadConfigFile reads a YAML configuration file over the defaults.
func LoadConfigFile(path string) (*Config, error) {
	return impl.LoadConfigFile(path)
}

// DefaultConfigPath returns $AOC_CONFIG or ~/.aoc/config.yaml.
func DefaultConfigPath() string {
	return impl.DefaultConfigPath()
}

// Tokenize lexes a whole script.
func Tokenize(source, filename string) ([]Token, error) {
	return impl.Tokenize(source, filename)
}

// ParseString lexes and parses a whole script.
func ParseString(source, filename string) (*Program, error) {
	return impl.ParseString(source, filename)
}

// IntegerValue creates an INT value.
func IntegerValue(i int32) Value { return impl.IntegerValue(i) }

// TextValue creates a STRING value.
func TextValue(s string) Value { return impl.TextValue(s) }

// RealValue creates a FLOAT value.
func RealValue(f float32) Value { return impl.RealValue(f) }
