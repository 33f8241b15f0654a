// Package token defines the lexical token types for SQL DDL parsing.
//
// ANSI core tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific tokens are registered dynamically via Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'

	// Operators and punctuation (ANSI)
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	SEMICOLON // ;
	DCOLON    // ::
	PARAM     // $1, ?, :name

	// ANSI Keywords (alphabetical)
	ADD
	ALTER
	AND
	AS
	ASC
	BY
	CASCADE
	CHECK
	COLLATE
	COLUMN
	CONSTRAINT
	CREATE
	DEFAULT
	DELETE
	DESC
	DROP
	EXISTS
	FALSE
	FOREIGN
	FROM
	GENERATED
	IF
	IN
	INDEX
	INSERT
	INTO
	IS
	KEY
	LIKE
	NOT
	NULL
	ON
	OR
	PRIMARY
	REFERENCES
	RENAME
	RESTRICT
	SELECT
	SET
	TABLE
	TEMP
	TEMPORARY
	TO
	TRUE
	UNIQUE
	UPDATE
	USING
	VALUES
	VIEW
	WHERE
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	// Check dynamic tokens first
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	SEMICOLON: ";",
	DCOLON:    "::",
	PARAM:     "PARAM",

	ADD:        "ADD",
	ALTER:      "ALTER",
	AND:        "AND",
	AS:         "AS",
	ASC:        "ASC",
	BY:         "BY",
	CASCADE:    "CASCADE",
	CHECK:      "CHECK",
	COLLATE:    "COLLATE",
	COLUMN:     "COLUMN",
	CONSTRAINT: "CONSTRAINT",
	CREATE:     "CREATE",
	DEFAULT:    "DEFAULT",
	DELETE:     "DELETE",
	DESC:       "DESC",
	DROP:       "DROP",
	EXISTS:     "EXISTS",
	FALSE:      "FALSE",
	FOREIGN:    "FOREIGN",
	FROM:       "FROM",
	GENERATED:  "GENERATED",
	IF:         "IF",
	IN:         "IN",
	INDEX:      "INDEX",
	INSERT:     "INSERT",
	INTO:       "INTO",
	IS:         "IS",
	KEY:        "KEY",
	LIKE:       "LIKE",
	NOT:        "NOT",
	NULL:       "NULL",
	ON:         "ON",
	OR:         "OR",
	PRIMARY:    "PRIMARY",
	REFERENCES: "REFERENCES",
	RENAME:     "RENAME",
	RESTRICT:   "RESTRICT",
	SELECT:     "SELECT",
	SET:        "SET",
	TABLE:      "TABLE",
	TEMP:       "TEMP",
	TEMPORARY:  "TEMPORARY",
	TO:         "TO",
	TRUE:       "TRUE",
	UNIQUE:     "UNIQUE",
	UPDATE:     "UPDATE",
	USING:      "USING",
	VALUES:     "VALUES",
	VIEW:       "VIEW",
	WHERE:      "WHERE",
	WITH:       "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"add":        ADD,
	"alter":      ALTER,
	"and":        AND,
	"as":         AS,
	"asc":        ASC,
	"by":         BY,
	"cascade":    CASCADE,
	"check":      CHECK,
	"collate":    COLLATE,
	"column":     COLUMN,
	"constraint": CONSTRAINT,
	"create":     CREATE,
	"default":    DEFAULT,
	"delete":     DELETE,
	"desc":       DESC,
	"drop":       DROP,
	"exists":     EXISTS,
	"false":      FALSE,
	"foreign":    FOREIGN,
	"from":       FROM,
	"generated":  GENERATED,
	"if":         IF,
	"in":         IN,
	"index":      INDEX,
	"insert":     INSERT,
	"into":       INTO,
	"is":         IS,
	"key":        KEY,
	"like":       LIKE,
	"not":        NOT,
	"null":       NULL,
	"on":         ON,
	"or":         OR,
	"primary":    PRIMARY,
	"references": REFERENCES,
	"rename":     RENAME,
	"restrict":   RESTRICT,
	"select":     SELECT,
	"set":        SET,
	"table":      TABLE,
	"temp":       TEMP,
	"temporary":  TEMPORARY,
	"to":         TO,
	"true":       TRUE,
	"unique":     UNIQUE,
	"update":     UPDATE,
	"using":      USING,
	"values":     VALUES,
	"view":       VIEW,
	"where":      WHERE,
	"with":       WITH,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a builtin keyword, the keyword token type is returned.
// Otherwise, IDENT is returned. Dialect-specific keywords are resolved
// separately through the dialect's own keyword table.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= ADD && t <= WITH
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
