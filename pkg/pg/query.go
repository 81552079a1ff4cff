package pg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/crudkit/schema"
)

// Query is a parameterized statement.
type Query struct {
	SQL  string
	Args []any
}

type params struct {
	args []any
}

// add binds v and returns its placeholder.
func (p *params) add(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// table accepts "schema.table" as well as a bare name.
func tableIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InsertSQL builds an INSERT for the insert array values. Columns are sorted
// so the statement is stable. With no values the row takes column defaults.
func InsertSQL(table string, values map[string]string, returning ...string) (Query, error) {
	if table == "" {
		return Query{}, ErrEmptyTable
	}
	p := &params{}
	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(tableIdent(table))

	if len(values) == 0 {
		sql.WriteString(" DEFAULT VALUES")
	} else {
		keys := sortedKeys(values)
		cols := make([]string, len(keys))
		holders := make([]string, len(keys))
		for i, k := range keys {
			cols[i] = ident(k)
			holders[i] = p.add(values[k])
		}
		fmt.Fprintf(&sql, " (%s) VALUES (%s)", strings.Join(cols, ", "), strings.Join(holders, ", "))
	}
	writeReturning(&sql, returning)
	return Query{SQL: sql.String(), Args: p.args}, nil
}

func writeReturning(sql *strings.Builder, cols []string) {
	if len(cols) == 0 {
		return
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	sql.WriteString(" RETURNING ")
	sql.WriteString(strings.Join(quoted, ", "))
}

// UpdateSQL builds an UPDATE of the row whose idColumn equals id. The
// identifier itself is never updated.
func UpdateSQL(table, idColumn string, id any, values map[string]string, returning ...string) (Query, error) {
	if table == "" {
		return Query{}, ErrEmptyTable
	}
	if idColumn == "" || id == nil {
		return Query{}, ErrNoIdentifier
	}
	if len(values) == 0 {
		return Query{}, ErrNoValues
	}

	p := &params{}
	keys := sortedKeys(values)
	sets := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == idColumn {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = %s", ident(k), p.add(values[k])))
	}
	if len(sets) == 0 {
		return Query{}, ErrNoValues
	}
	var sql strings.Builder
	fmt.Fprintf(&sql, "UPDATE %s SET %s WHERE %s = %s",
		tableIdent(table), strings.Join(sets, ", "), ident(idColumn), p.add(id))
	writeReturning(&sql, returning)
	return Query{SQL: sql.String(), Args: p.args}, nil
}

// DeleteSQL builds a DELETE of the row whose idColumn equals id.
func DeleteSQL(table, idColumn string, id any) (Query, error) {
	if table == "" {
		return Query{}, ErrEmptyTable
	}
	if idColumn == "" || id == nil {
		return Query{}, ErrNoIdentifier
	}
	p := &params{}
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", tableIdent(table), ident(idColumn), p.add(id))
	return Query{SQL: sql, Args: p.args}, nil
}

// Select describes the rows a lookup reads.
type Select struct {
	Table   string
	Columns []string // empty selects *
	OrderBy string
	Limit   int // zero means no limit
}

// LookupSQL builds a SELECT filtered by lookup conditions.
//
// Conditions are alternatives and are joined with OR, in name order. A simple
// condition compares its field with its queue value per operator. A simple
// condition without a queue value, or with the present operator, checks that
// the field is neither NULL nor empty. A fallback condition matches Then where
// If holds and Else where it does not. No conditions select every row.
func LookupSQL(sel Select, conds schema.Conditions) (Query, error) {
	if sel.Table == "" {
		return Query{}, ErrEmptyTable
	}
	p := &params{}

	cols := "*"
	if len(sel.Columns) > 0 {
		quoted := make([]string, len(sel.Columns))
		for i, c := range sel.Columns {
			quoted[i] = ident(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, "SELECT %s FROM %s", cols, tableIdent(sel.Table))

	var where []string
	for _, name := range conds.Names() {
		switch c := conds[name].(type) {
		case schema.SimpleCondition:
			if clause := simpleClause(c, p); clause != "" {
				where = append(where, clause)
			}
		case schema.FallbackCondition:
			if clause := fallbackClause(c, p); clause != "" {
				where = append(where, clause)
			}
		}
	}
	if len(where) > 0 {
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(where, " OR "))
	}

	if sel.OrderBy != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(ident(sel.OrderBy))
	}
	if sel.Limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(p.add(sel.Limit))
	}
	return Query{SQL: sql.String(), Args: p.args}, nil
}

func simpleClause(c schema.SimpleCondition, p *params) string {
	if c.Field == "" {
		return ""
	}
	col := ident(c.Field)
	q, ok := c.QueueValue()
	if !ok || c.Operator == schema.OperatorPresent {
		return fmt.Sprintf("COALESCE(%s::text, '') <> ''", col)
	}

	switch c.Operator {
	case schema.OperatorEquals:
		return fmt.Sprintf("%s::text = %s", col, p.add(q))
	case schema.OperatorPrefix:
		return fmt.Sprintf("%s::text ILIKE %s", col, p.add(escapeLike(q)+"%"))
	default:
		return fmt.Sprintf("%s::text ILIKE %s", col, p.add("%"+escapeLike(q)+"%"))
	}
}

func fallbackClause(c schema.FallbackCondition, p *params) string {
	cond := simpleClause(c.If, p)
	then := simpleClause(c.Then, p)
	els := simpleClause(c.Else, p)

	switch {
	case cond == "" && then == "":
		return wrap(els)
	case cond == "":
		return wrap(then)
	}

	var branches []string
	if then != "" {
		branches = append(branches, fmt.Sprintf("((%s) AND (%s))", cond, then))
	}
	if els != "" {
		branches = append(branches, fmt.Sprintf("(NOT (%s) AND (%s))", cond, els))
	}
	if len(branches) == 0 {
		return ""
	}
	return "(" + strings.Join(branches, " OR ") + ")"
}

func wrap(clause string) string {
	if clause == "" {
		return ""
	}
	return "(" + clause + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
