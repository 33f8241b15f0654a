package parser_test

import (
	"testing"

	"github.com/sqlport-dev/sqlport/pkg/parser"
	"github.com/sqlport-dev/sqlport/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	toks, err := parser.Tokenize("CREATE TABLE t (id INT);")
	require.NoError(t, err)
	types := make([]token.TokenType, 0, len(toks))
	for _, tk := range toks {
		types = append(types, tk.Type)
	}
	assert.Equal(t, []token.TokenType{
		token.CREATE, token.TABLE, token.IDENT, token.LPAREN,
		token.IDENT, token.IDENT, token.RPAREN, token.SEMICOLON,
	}, types)
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	toks, err := parser.Tokenize("create Table SELECT")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.CREATE, toks[0].Type)
	assert.Equal(t, token.TABLE, toks[1].Type)
	assert.Equal(t, token.SELECT, toks[2].Type)
}

func TestLexerQuotedIdentifierEscapes(t *testing.T) {
	toks, err := parser.Tokenize(`SELECT "a""b"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, `a"b`, toks[1].Literal)
}

func TestLexerStringEscapes(t *testing.T) {
	toks, err := parser.Tokenize(`SELECT 'it''s'`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[1].Type)
	assert.Equal(t, "it's", toks[1].Literal)
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := parser.Tokenize("SELECT 'oops")
	require.Error(t, err)
	var lerr *parser.LexError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Error(), "unterminated string")
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	_, err := parser.Tokenize("SELECT 1 /* never closed")
	require.Error(t, err)
	var lerr *parser.LexError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Error(), "block comment")
}

func TestLexerPositions(t *testing.T) {
	toks, err := parser.Tokenize("SELECT\n  id")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 3, toks[1].Pos.Column)
}

func TestLexerDialectDelimitedIdentifiers(t *testing.T) {
	my := mustDialect(t, "mysql")
	l := parser.NewLexerWithDialect("`order`", my)
	tok := l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "order", tok.Literal)

	lite := mustDialect(t, "sqlite")
	l = parser.NewLexerWithDialect("[select]", lite)
	tok = l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "select", tok.Literal)

	// Without backtick identifiers the char is illegal.
	an := mustDialect(t, "ansi")
	l = parser.NewLexerWithDialect("`x`", an)
	tok = l.NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
}

func TestLexerDialectKeywords(t *testing.T) {
	pg := mustDialect(t, "postgres")
	l := parser.NewLexerWithDialect("UNLOGGED", pg)
	tok := l.NextToken()
	assert.True(t, token.IsDynamic(tok.Type), "UNLOGGED should lex as a dialect keyword")

	// The same word is a plain identifier for dialects that never
	// registered it.
	an := mustDialect(t, "ansi")
	l = parser.NewLexerWithDialect("UNLOGGED", an)
	tok = l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type)
}

func TestLexerParameterMarkers(t *testing.T) {
	cases := []struct {
		sql      string
		literals []string
	}{
		{`SELECT * FROM users WHERE id = $1 AND org = $2`, []string{"$1", "$2"}},
		{`SELECT * FROM users WHERE id = ?`, []string{"?"}},
		{`UPDATE users SET name = :name WHERE id = :id`, []string{":name", ":id"}},
	}
	for _, tc := range cases {
		toks, err := parser.Tokenize(tc.sql)
		require.NoError(t, err, tc.sql)
		var params []string
		for _, tk := range toks {
			if tk.Type == token.PARAM {
				params = append(params, tk.Literal)
			}
		}
		assert.Equal(t, tc.literals, params, tc.sql)
	}
}

func TestLexerDoubleColonCast(t *testing.T) {
	toks, err := parser.Tokenize(`SELECT total::numeric FROM orders`)
	require.NoError(t, err)
	var found bool
	for _, tk := range toks {
		if tk.Type == token.DCOLON {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLexerDollarQuotedString(t *testing.T) {
	toks, err := parser.Tokenize(`SELECT $body$it's; raw$body$`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[1].Type)
	assert.Equal(t, "it's; raw", toks[1].Literal)

	toks, err = parser.Tokenize(`SELECT $$plain$$`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "plain", toks[1].Literal)
}

func TestLexerUnterminatedDollarQuote(t *testing.T) {
	_, err := parser.Tokenize(`SELECT $body$never closed`)
	require.Error(t, err)
	var lerr *parser.LexError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Error(), "dollar-quoted")
}
