package checker

import (
	"github.com/sqlport-dev/sqlport/pkg/parser"
)

// ColumnInfo is one column in an extracted schema.
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	NotNull bool   `json:"not_null,omitempty"`
	Default string `json:"default,omitempty"`
}

// TableInfo is one table in an extracted schema, in declaration order.
type TableInfo struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// ExtractSchema walks parse results and builds the table/column view the
// statements describe. CREATE TABLE introduces tables; ALTER TABLE ADD,
// DROP and RENAME COLUMN are applied on top. Statements that failed to
// parse are skipped; the rest of the schema still extracts.
func ExtractSchema(results []parser.Result) []TableInfo {
	var order []string
	tables := make(map[string]*TableInfo)

	for _, res := range results {
		if res.Err != nil || res.Stmt == nil {
			continue
		}
		stmt := res.Stmt
		switch stmt.Kind {
		case parser.KindCreateTable:
			name := stmt.Name.String()
			if _, seen := tables[name]; !seen {
				order = append(order, name)
			}
			info := &TableInfo{Name: name}
			for _, col := range stmt.Columns {
				info.Columns = append(info.Columns, columnInfo(col))
			}
			tables[name] = info

		case parser.KindAlterTable:
			name := stmt.Name.String()
			info, ok := tables[name]
			if !ok || stmt.Alter == nil {
				continue
			}
			applyAlter(info, stmt.Alter)
			if stmt.Alter.Action == parser.AlterRenameTable {
				delete(tables, name)
				tables[info.Name] = info
				for i, n := range order {
					if n == name {
						order[i] = info.Name
						break
					}
				}
			}

		case parser.KindDropTable:
			name := stmt.Name.String()
			if _, ok := tables[name]; ok {
				delete(tables, name)
				for i, n := range order {
					if n == name {
						order = append(order[:i], order[i+1:]...)
						break
					}
				}
			}
		}
	}

	out := make([]TableInfo, 0, len(order))
	for _, name := range order {
		out = append(out, *tables[name])
	}
	return out
}

func columnInfo(col *parser.ColumnDef) ColumnInfo {
	return ColumnInfo{
		Name:    col.Name,
		Type:    col.Type.String(),
		NotNull: col.NotNull,
		Default: col.Default,
	}
}

func applyAlter(info *TableInfo, spec *parser.AlterSpec) {
	switch spec.Action {
	case parser.AlterAddColumn:
		if spec.Column != nil {
			info.Columns = append(info.Columns, columnInfo(spec.Column))
		}
	case parser.AlterDropColumn:
		for i, col := range info.Columns {
			if col.Name == spec.OldName {
				info.Columns = append(info.Columns[:i], info.Columns[i+1:]...)
				break
			}
		}
	case parser.AlterRenameColumn:
		for i, col := range info.Columns {
			if col.Name == spec.OldName {
				info.Columns[i].Name = spec.NewName
				break
			}
		}
	case parser.AlterRenameTable:
		info.Name = spec.NewName
	}
}
