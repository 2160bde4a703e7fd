package report

import (
	"context"

	"finboard/internal/core"
)

// MonthlyComparison compares revenue and expense for the calendar month
// clock reports. It always returns two rows, Receita then Despesa; a month
// with no entries of a type yields 0 for it.
func MonthlyComparison(ctx context.Context, src Source, clock Clock) (Table, error) {
	if clock == nil {
		clock = SystemClock()
	}
	month := core.YearMonthOf(clock.Now())

	revenue, err := sumLedger(ctx, src, LedgerQuery{Type: core.LedgerRevenue, Month: month})
	if err != nil {
		return Table{}, queryFailed(KindMonthlyComparison, err)
	}
	expense, err := sumLedger(ctx, src, LedgerQuery{Type: core.LedgerExpense, Month: month})
	if err != nil {
		return Table{}, queryFailed(KindMonthlyComparison, err)
	}

	t := newTable(KindMonthlyComparison, "Categoria", "Valor")
	t.Chart = ChartBar
	t.ValueLabels = true
	t.Month = month
	t.addAggregate(core.LedgerRevenue, revenue)
	t.addAggregate(core.LedgerExpense, expense)
	return t, nil
}
