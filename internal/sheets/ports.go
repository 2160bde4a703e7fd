// Package sheets exports report tables to spreadsheet tabs.
package sheets

import (
	"context"
)

// TableWriter replaces the contents of one spreadsheet tab.
type TableWriter interface {
	// WriteTable creates tab when missing, clears it and writes values
	// starting at A1. values[0] is the header row.
	WriteTable(ctx context.Context, tab string, values [][]any) error
}
