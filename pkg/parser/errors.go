package parser

import (
	"fmt"

	"github.com/sqlport-dev/sqlport/pkg/token"
)

// ParseError represents a token sequence that matches no grammar production.
// The parser fails the offending statement only; callers resume with the
// next statement in the same input.
type ParseError struct {
	Pos      token.Position
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: expected %s, found %s",
		e.Pos.Line, e.Pos.Column, e.Expected, e.Found)
}

// LexError represents a malformed token, e.g. an unterminated string literal
// or block comment. The offset points at the start of the offending token.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d (offset %d): %s",
		e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedQuoted  = "unterminated quoted identifier"
	ErrUnterminatedComment = "unterminated block comment"
	ErrUnterminatedDollar  = "unterminated dollar-quoted string"
)
