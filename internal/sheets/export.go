package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"finboard/internal/report"
)

// Values lays a table out as spreadsheet rows: the column header first,
// then one row per table row. Aggregate values are written as numbers so
// the sheet can chart them.
func Values(t report.Table) [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	out = append(out, header)

	_, isEntity := t.Kind.Entity()
	for _, r := range t.Rows {
		row := make([]any, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = c
		}
		if !isEntity && len(row) == 2 {
			row[1] = r.Value.Float64()
		}
		out = append(out, row)
	}
	return out
}

// TabName is the tab a table is exported to.
func TabName(t report.Table) string {
	if t.Month.IsZero() {
		return t.Title
	}
	return fmt.Sprintf("%s %s", t.Title, t.Month)
}

// Export writes every table to its own tab, stopping at the first failure.
func Export(ctx context.Context, w TableWriter, tables []report.Table) error {
	for _, t := range tables {
		tab := TabName(t)
		if err := w.WriteTable(ctx, tab, Values(t)); err != nil {
			return fmt.Errorf("export %s: %w", t.Kind, err)
		}
		slog.InfoContext(ctx, "Exported report", "kind", t.Kind, "tab", tab, "rows", len(t.Rows))
	}
	return nil
}
