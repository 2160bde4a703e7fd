package report

import (
	"context"
	"fmt"
)

// Options carries the collaborators some reports need.
type Options struct {
	Clock        Clock
	OnUnresolved UnresolvedFunc
}

// Func builds one report from a source.
type Func func(ctx context.Context, src Source, opts Options) (Table, error)

// Registry maps each report kind to the transform that builds it.
type Registry map[Kind]Func

// DefaultRegistry wires every kind in Kinds to its transform.
func DefaultRegistry() Registry {
	r := Registry{
		KindCashFlow: func(ctx context.Context, src Source, _ Options) (Table, error) {
			return CashFlow(ctx, src)
		},
		KindSupplierDistribution: func(ctx context.Context, src Source, _ Options) (Table, error) {
			return SupplierDistribution(ctx, src)
		},
		KindTopCustomers: func(ctx context.Context, src Source, opts Options) (Table, error) {
			return TopCustomers(ctx, src, opts.OnUnresolved)
		},
		KindMonthlyComparison: func(ctx context.Context, src Source, opts Options) (Table, error) {
			return MonthlyComparison(ctx, src, opts.Clock)
		},
	}
	for kind, entity := range entityKinds {
		entity := entity
		r[kind] = func(ctx context.Context, src Source, _ Options) (Table, error) {
			return ListEntity(ctx, src, entity)
		}
	}
	return r
}

// Run dispatches kind to its transform.
func (r Registry) Run(ctx context.Context, kind Kind, src Source, opts Options) (Table, error) {
	fn, ok := r[kind]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}
	return fn(ctx, src, opts)
}

// MenuEntry is one choice of the dashboard's single-select menu.
type MenuEntry struct {
	Slug  string
	Label string
	Kinds []Kind
}

var menu = []MenuEntry{
	{Slug: "clientes", Label: "Clientes", Kinds: []Kind{KindCustomers}},
	{Slug: "contas-a-pagar", Label: "Contas a Pagar", Kinds: []Kind{KindPayables}},
	{Slug: "contas-a-receber", Label: "Contas a Receber", Kinds: []Kind{KindReceivables}},
	{Slug: "lancamentos", Label: "Lançamentos", Kinds: []Kind{KindLedger}},
	{Slug: "relatorios", Label: "Relatórios", Kinds: []Kind{
		KindCashFlow, KindSupplierDistribution, KindTopCustomers, KindMonthlyComparison,
	}},
}

// Menu returns the menu entries in display order. The first one is the
// default selection.
func Menu() []MenuEntry {
	out := make([]MenuEntry, len(menu))
	copy(out, menu)
	return out
}

// LookupMenu finds an entry by slug.
func LookupMenu(slug string) (MenuEntry, bool) {
	for _, m := range menu {
		if m.Slug == slug {
			return m, true
		}
	}
	return MenuEntry{}, false
}

// ReportsEntry is the slug of the menu entry holding the aggregate reports.
const ReportsEntry = "relatorios"
