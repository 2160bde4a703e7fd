package report

import (
	"context"

	"finboard/internal/core"
)

// CashFlow sums ledger amounts per type. Every distinct type present in the
// data gets a row, not only Receita and Despesa. Rows are ordered by type.
func CashFlow(ctx context.Context, src Source) (Table, error) {
	entries, err := src.LedgerEntries(ctx, LedgerQuery{})
	if err != nil {
		return Table{}, queryFailed(KindCashFlow, err)
	}

	byType := newGroup[string]()
	for _, e := range entries {
		byType.add(e.Type, e.Amount)
	}

	t := newTable(KindCashFlow, "tipo", "total")
	for _, typ := range sortedKeys(byType) {
		t.addAggregate(typ, byType.total(typ))
	}
	return t, nil
}

// SupplierDistribution sums payables per supplier name, largest first.
// Suppliers with equal totals keep the order they first appear in.
func SupplierDistribution(ctx context.Context, src Source) (Table, error) {
	payables, err := src.Payables(ctx)
	if err != nil {
		return Table{}, queryFailed(KindSupplierDistribution, err)
	}

	bySupplier := newGroup[string]()
	for _, p := range payables {
		bySupplier.add(p.Supplier, p.Amount)
	}

	t := newTable(KindSupplierDistribution, "fornecedor", "valor")
	t.Chart = ChartPie
	for _, name := range bySupplier.ranked() {
		t.addAggregate(name, bySupplier.total(name))
	}
	return t, nil
}

// sumLedger adds up the entries matching q.
func sumLedger(ctx context.Context, src Source, q LedgerQuery) (core.Money, error) {
	entries, err := src.LedgerEntries(ctx, q)
	if err != nil {
		return core.Money{}, err
	}
	total := core.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total, nil
}
