package report

import (
	"finboard/internal/core"
)

// Kind identifies one report. The set is closed; see Kinds.
type Kind string

const (
	KindCustomers            Kind = "customers"
	KindPayables             Kind = "payables"
	KindReceivables          Kind = "receivables"
	KindLedger               Kind = "ledger"
	KindCashFlow             Kind = "cash_flow"
	KindSupplierDistribution Kind = "supplier_distribution"
	KindTopCustomers         Kind = "top_customers"
	KindMonthlyComparison    Kind = "monthly_comparison"
)

// Kinds returns every report kind in menu order.
func Kinds() []Kind {
	return []Kind{
		KindCustomers, KindPayables, KindReceivables, KindLedger,
		KindCashFlow, KindSupplierDistribution, KindTopCustomers, KindMonthlyComparison,
	}
}

// IsValid returns true if k is a known report kind.
func (k Kind) IsValid() bool {
	_, ok := titles[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// Title is the section heading shown above the report.
func (k Kind) Title() string {
	return titles[k]
}

// Entity returns the relation dumped by a lister kind.
func (k Kind) Entity() (core.Entity, bool) {
	e, ok := entityKinds[k]
	return e, ok
}

var titles = map[Kind]string{
	KindCustomers:            "Cadastro de Clientes",
	KindPayables:             "Contas a Pagar",
	KindReceivables:          "Contas a Receber",
	KindLedger:               "Lançamentos Financeiros",
	KindCashFlow:             "Relatório de Fluxo de Caixa",
	KindSupplierDistribution: "Distribuição das Contas a Pagar por Fornecedor",
	KindTopCustomers:         "Top 5 Clientes com Maior Receita",
	KindMonthlyComparison:    "Comparação Receita vs Despesa",
}

var entityKinds = map[Kind]core.Entity{
	KindCustomers:   core.EntityCustomer,
	KindPayables:    core.EntityPayable,
	KindReceivables: core.EntityReceivable,
	KindLedger:      core.EntityLedger,
}

// ChartKind tells the presentation surface how to draw a table.
type ChartKind string

const (
	ChartNone ChartKind = ""
	ChartPie  ChartKind = "pie"
	ChartBar  ChartKind = "bar"
)

// Table is a display-ready report result.
//
// Aggregate reports fill Label and Value on every row and mirror them into
// Cells; entity dumps only fill Cells.
type Table struct {
	Kind    Kind
	Title   string
	Columns []string
	Rows    []Row
	Chart   ChartKind
	// ValueLabels asks the chart to print each mark's exact value.
	ValueLabels bool
	// Month is the year-month a month-relative report was computed for.
	Month core.YearMonth
}

// Row is one line of a Table.
type Row struct {
	Label string
	Value core.Money
	Cells []string
}

func newTable(kind Kind, columns ...string) Table {
	return Table{Kind: kind, Title: kind.Title(), Columns: columns, Rows: []Row{}}
}

func (t *Table) addAggregate(label string, value core.Money) {
	t.Rows = append(t.Rows, Row{Label: label, Value: value, Cells: []string{label, value.String()}})
}

// Total sums the Value of every row.
func (t Table) Total() core.Money {
	total := core.Zero
	for _, r := range t.Rows {
		total = total.Add(r.Value)
	}
	return total
}

// Labels returns the row labels in order.
func (t Table) Labels() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Label
	}
	return out
}

// Values returns the row values in order.
func (t Table) Values() []core.Money {
	out := make([]core.Money, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Value
	}
	return out
}

// Cells returns the text grid of the table, one slice per row.
func (t Table) Cells() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Cells
	}
	return out
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}
