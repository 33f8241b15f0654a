package checker

import (
	"strings"

	"github.com/sqlport-dev/sqlport/pkg/dialect"
	"github.com/sqlport-dev/sqlport/pkg/parser"
	"github.com/sqlport-dev/sqlport/pkg/token"
)

// QueryOutput is one column a query returns, with the table it reads from
// when the select list makes that explicit. Aliases declared in FROM resolve
// to the underlying table name.
type QueryOutput struct {
	Name  string `json:"name"`
	Table string `json:"table,omitempty"`
}

// QueryInfo summarizes one statement in a query file: the statement kind,
// the main table it touches, its parameter markers, and the columns a
// SELECT returns. The view is shallow: it comes from a token scan, not a
// full parse, so any statement the splitter can delimit gets an entry.
type QueryInfo struct {
	Name    string         `json:"name,omitempty"`
	Kind    string         `json:"kind"`
	Table   string         `json:"table,omitempty"`
	Params  []string       `json:"params,omitempty"`
	Outputs []QueryOutput  `json:"outputs,omitempty"`
	Pos     token.Position `json:"position"`
}

// AnalyzeQueries scans src under the given dialect and summarizes each
// statement. Statements that would fail the DDL grammar still get an entry;
// only lexically broken ones are summarized from the tokens before the
// error.
func AnalyzeQueries(src string, d *dialect.Dialect) []QueryInfo {
	var infos []QueryInfo
	for _, raw := range parser.SplitStatements(src) {
		lx := parser.NewLexerWithDialect(raw.Text, d)
		var toks []token.Token
		for {
			tk := lx.NextToken()
			if tk.Type == token.EOF || tk.Type == token.ILLEGAL {
				break
			}
			toks = append(toks, tk)
		}
		if len(toks) == 0 {
			continue
		}

		info := QueryInfo{
			Name:   queryName(lx.Comments, toks[0].Pos.Offset),
			Kind:   statementKindName(toks[0].Type),
			Params: paramMarkers(toks),
			Pos:    raw.Pos,
		}
		aliases := tableAliases(toks)
		info.Table = primaryTable(toks, aliases)
		if toks[0].Type == token.SELECT {
			info.Outputs = selectOutputs(toks, aliases)
		}
		infos = append(infos, info)
	}
	return infos
}

// queryName extracts a name from a leading "-- name: X" comment, the
// convention query files use to label statements. Only comments before the
// statement's first token count; an inline comment never names the query.
func queryName(comments []*token.Comment, firstToken int) string {
	for _, c := range comments {
		if !c.IsLineComment() || c.Span.Start.Offset >= firstToken {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "--"))
		if rest, ok := strings.CutPrefix(text, "name:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func statementKindName(t token.TokenType) string {
	switch t {
	case token.SELECT, token.WITH:
		return "select"
	case token.INSERT:
		return "insert"
	case token.UPDATE:
		return "update"
	case token.DELETE:
		return "delete"
	case token.CREATE, token.ALTER, token.DROP:
		return "ddl"
	default:
		return "other"
	}
}

// paramMarkers returns the statement's parameter markers in order. Numbered
// and named markers are deduplicated; each bare "?" is its own parameter.
func paramMarkers(toks []token.Token) []string {
	var params []string
	seen := make(map[string]bool)
	for _, tk := range toks {
		if tk.Type != token.PARAM {
			continue
		}
		if tk.Literal != "?" {
			if seen[tk.Literal] {
				continue
			}
			seen[tk.Literal] = true
		}
		params = append(params, tk.Literal)
	}
	return params
}

// joinWords are FROM-clause words that cannot be a table alias.
var joinWords = map[string]bool{
	"join": true, "left": true, "right": true, "inner": true,
	"outer": true, "cross": true, "full": true, "natural": true,
}

// tableAliases maps aliases declared in top-level FROM and JOIN clauses to
// their table names, so output columns report the real table.
func tableAliases(toks []token.Token) map[string]string {
	aliases := make(map[string]string)
	depth := 0
	expectTable := false
	for i := 0; i < len(toks); i++ {
		tk := toks[i]
		switch tk.Type {
		case token.LPAREN:
			depth++
			continue
		case token.RPAREN:
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		if tk.Type == token.FROM || tk.Type == token.COMMA ||
			(tk.Type == token.IDENT && strings.EqualFold(tk.Literal, "join")) {
			expectTable = true
			continue
		}
		if !expectTable || tk.Type != token.IDENT || joinWords[strings.ToLower(tk.Literal)] {
			expectTable = false
			continue
		}
		name, next := readDottedName(toks, i)
		alias := ""
		if next < len(toks) && toks[next].Type == token.AS {
			next++
		}
		if next < len(toks) && toks[next].Type == token.IDENT &&
			!joinWords[strings.ToLower(toks[next].Literal)] {
			alias = toks[next].Literal
			next++
		}
		if alias != "" {
			aliases[alias] = name
		}
		i = next - 1
		expectTable = false
	}
	return aliases
}

// readDottedName reads a dotted object name starting at index i and returns
// the full name and the index of the first token past it.
func readDottedName(toks []token.Token, i int) (string, int) {
	var parts []string
	parts = append(parts, toks[i].Literal)
	i++
	for i+1 < len(toks) && toks[i].Type == token.DOT && toks[i+1].Type == token.IDENT {
		parts = append(parts, toks[i+1].Literal)
		i += 2
	}
	return strings.Join(parts, "."), i
}

// primaryTable finds the main table a statement touches: the first
// top-level FROM relation for SELECT and DELETE, the INTO target for
// INSERT, the UPDATE target for UPDATE.
func primaryTable(toks []token.Token, aliases map[string]string) string {
	var after token.TokenType
	switch toks[0].Type {
	case token.SELECT, token.WITH, token.DELETE:
		after = token.FROM
	case token.INSERT:
		after = token.INTO
	case token.UPDATE:
		after = token.UPDATE
	default:
		return ""
	}

	depth := 0
	for i, tk := range toks {
		switch tk.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case after:
			if depth != 0 {
				continue
			}
			if i+1 < len(toks) && toks[i+1].Type == token.IDENT {
				name, _ := readDottedName(toks, i+1)
				if resolved, ok := aliases[name]; ok {
					return resolved
				}
				return name
			}
		}
	}
	return ""
}

// selectOutputs extracts the columns a SELECT returns from the select list:
// plain columns, qualified columns (with the alias resolved to its table),
// aliased expressions, and the bare wildcard.
func selectOutputs(toks []token.Token, aliases map[string]string) []QueryOutput {
	// Select list: tokens between SELECT and the top-level FROM.
	end := len(toks)
	depth := 0
	for i := 1; i < len(toks); i++ {
		switch toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.FROM:
			if depth == 0 {
				end = i
			}
		}
		if end != len(toks) {
			break
		}
	}

	var outputs []QueryOutput
	start := 1
	depth = 0
	for i := 1; i <= end; i++ {
		if i < end {
			switch toks[i].Type {
			case token.LPAREN:
				depth++
				continue
			case token.RPAREN:
				depth--
				continue
			}
			if toks[i].Type != token.COMMA || depth != 0 {
				continue
			}
		}
		if out, ok := outputField(toks[start:i], aliases); ok {
			outputs = append(outputs, out)
		}
		start = i + 1
	}
	return outputs
}

// outputField interprets one select-list item.
func outputField(item []token.Token, aliases map[string]string) (QueryOutput, bool) {
	for len(item) > 0 && item[len(item)-1].Type == token.SEMICOLON {
		item = item[:len(item)-1]
	}
	if len(item) == 0 {
		return QueryOutput{}, false
	}

	// Trailing [AS] alias names the output; the rest of the item is the
	// expression it came from.
	if len(item) >= 2 && item[len(item)-1].Type == token.IDENT {
		named := item[len(item)-2].Type == token.AS
		if !named && len(item) == 2 && item[0].Type == token.IDENT {
			named = true // "col alias" short form
		}
		if named {
			out := QueryOutput{Name: item[len(item)-1].Literal}
			expr := item[:len(item)-1]
			if len(expr) > 0 && expr[len(expr)-1].Type == token.AS {
				expr = expr[:len(expr)-1]
			}
			if src, ok := outputField(expr, aliases); ok {
				out.Table = src.Table
			}
			return out, true
		}
	}

	switch {
	case len(item) == 1 && item[0].Type == token.STAR:
		return QueryOutput{Name: "*"}, true
	case len(item) == 1 && item[0].Type == token.IDENT:
		return QueryOutput{Name: item[0].Literal}, true
	case len(item) == 3 && item[0].Type == token.IDENT &&
		item[1].Type == token.DOT && item[2].Type == token.IDENT:
		table := item[0].Literal
		if resolved, ok := aliases[table]; ok {
			table = resolved
		}
		return QueryOutput{Name: item[2].Literal, Table: table}, true
	case len(item) == 5 && item[0].Type == token.IDENT && item[1].Type == token.DOT &&
		item[2].Type == token.IDENT && item[3].Type == token.DOT && item[4].Type == token.IDENT:
		return QueryOutput{Name: item[4].Literal, Table: item[2].Literal}, true
	}
	// Unnamed expressions have no stable output name; skip them.
	return QueryOutput{}, false
}
