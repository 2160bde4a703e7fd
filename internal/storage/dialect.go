package storage

import (
	"fmt"
	"strings"
)

// Dialect selects the SQL flavour and database/sql driver of a Store.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DriverName is the database/sql driver registered for d.
func (d Dialect) DriverName() string {
	return string(d)
}

// IsValid returns true if d is a supported dialect.
func (d Dialect) IsValid() bool {
	return d == SQLite || d == Postgres
}

// placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// monthOf truncates a date column to its YYYY-MM text form.
func (d Dialect) monthOf(column string) string {
	if d == Postgres {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}

// where builds a conjunction of bound equality conditions.
type where struct {
	dialect Dialect
	conds   []string
	args    []any
}

func (w *where) equals(expr string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, expr+" = "+w.dialect.placeholder(len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
