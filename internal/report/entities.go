package report

import (
	"context"
	"fmt"
	"strconv"

	"finboard/internal/core"
)

// ListEntity dumps every row of one relation in store order, with the
// relation's declared column order and no filtering or sorting.
func ListEntity(ctx context.Context, src Source, entity core.Entity) (Table, error) {
	kind, ok := kindForEntity(entity)
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	t := newTable(kind, entity.Columns()...)

	switch entity {
	case core.EntityCustomer:
		rows, err := src.Customers(ctx)
		if err != nil {
			return Table{}, queryFailed(kind, err)
		}
		for _, c := range rows {
			t.Rows = append(t.Rows, Row{Cells: []string{id(c.ID), c.Name, c.Email, c.Phone}})
		}
	case core.EntityPayable:
		rows, err := src.Payables(ctx)
		if err != nil {
			return Table{}, queryFailed(kind, err)
		}
		for _, p := range rows {
			t.Rows = append(t.Rows, Row{Cells: []string{
				id(p.ID), p.Supplier, amountCell(p.AmountText, p.Amount), p.DueDate, p.Status,
			}})
		}
	case core.EntityReceivable:
		rows, err := src.Receivables(ctx, ReceivableQuery{})
		if err != nil {
			return Table{}, queryFailed(kind, err)
		}
		for _, r := range rows {
			t.Rows = append(t.Rows, Row{Cells: []string{
				id(r.ID), id(r.CustomerID), amountCell(r.AmountText, r.Amount), r.DueDate, r.Status,
			}})
		}
	case core.EntityLedger:
		rows, err := src.LedgerEntries(ctx, LedgerQuery{})
		if err != nil {
			return Table{}, queryFailed(kind, err)
		}
		for _, e := range rows {
			t.Rows = append(t.Rows, Row{Cells: []string{
				id(e.ID), e.Type, amountCell(e.AmountText, e.Amount), e.Date, e.Description,
			}})
		}
	}
	return t, nil
}

func kindForEntity(e core.Entity) (Kind, bool) {
	for k, ent := range entityKinds {
		if ent == e {
			return k, true
		}
	}
	return "", false
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// amountCell prefers the stored text of an amount over its decimal form.
func amountCell(text string, m core.Money) string {
	if text != "" {
		return text
	}
	return m.Amount.String()
}
