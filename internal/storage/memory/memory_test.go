package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"finboard/internal/core"
	"finboard/internal/report"
)

const seedJSON = `{
  "clientes": [{"id": 1, "nome": "Ana"}, {"id": 2, "nome": "Bia", "email": "bia@example.com"}],
  "contas_pagar": [
    {"id": 1, "fornecedor": "A", "valor": "50", "vencimento": "2024-05-10", "status": "Pendente"},
    {"id": 2, "fornecedor": "B", "valor": "150,00", "vencimento": "2024-05-11", "status": "Pago"},
    {"id": 3, "fornecedor": "A", "valor": "25", "status": "Pendente"}
  ],
  "contas_receber": [
    {"id": 1, "cliente_id": 1, "valor": "200", "vencimento": "2024-05-01", "status": "Recebido"},
    {"id": 2, "cliente_id": 2, "valor": "300", "vencimento": "2024-05-02", "status": "Pendente"}
  ],
  "lancamentos": [
    {"id": 1, "tipo": "Receita", "valor": "100", "data": "2024-05-01"},
    {"id": 2, "tipo": "Despesa", "valor": "40", "data": "2024-05-15 10:30:00"},
    {"id": 3, "tipo": "Receita", "valor": "7", "data": "2024-04-30"}
  ]
}`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestNewFromFile(t *testing.T) {
	store, err := NewFromFile(writeSeed(t, seedJSON))
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	sess, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	defer sess.Close()
	ctx := context.Background()

	customers, _ := sess.Customers(ctx)
	if len(customers) != 2 || customers[1].Email != "bia@example.com" {
		t.Fatalf("unexpected customers %+v", customers)
	}
	payables, _ := sess.Payables(ctx)
	if len(payables) != 3 || !payables[1].Amount.Equal(core.MustMoney("150")) {
		t.Fatalf("unexpected payables %+v", payables)
	}
	if payables[1].AmountText != "150,00" || payables[2].DueDate != "" {
		t.Fatalf("seed text should be kept as written, got %+v", payables[1:])
	}

	may, _ := core.ParseYearMonth("2024-05")
	entries, _ := sess.LedgerEntries(ctx, report.LedgerQuery{Type: core.LedgerRevenue, Month: may})
	if len(entries) != 1 || entries[0].ID != 1 {
		t.Fatalf("unexpected filtered ledger %+v", entries)
	}
	settled, _ := sess.Receivables(ctx, report.ReceivableQuery{Status: core.StatusReceived})
	if len(settled) != 1 || settled[0].CustomerID != 1 {
		t.Fatalf("unexpected settled receivables %+v", settled)
	}
}

func TestNewFromFileMissingAndInvalid(t *testing.T) {
	store, err := NewFromFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing seed should give an empty store: %v", err)
	}
	sess, _ := store.Session(context.Background())
	if got, _ := sess.Customers(context.Background()); len(got) != 0 {
		t.Fatalf("expected no customers, got %v", got)
	}

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"clientes": [`},
		{"bad amount", `{"contas_pagar": [{"id": 1, "fornecedor": "A", "valor": "-5"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFromFile(writeSeed(t, tt.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSessionSnapshotAndClose(t *testing.T) {
	store := New(Dataset{Customers: []core.Customer{{ID: 1, Name: "Ana"}}})
	sess, _ := store.Session(context.Background())

	store.Replace(Dataset{})
	got, err := sess.Customers(context.Background())
	if err != nil {
		t.Fatalf("customers: %v", err)
	}
	if !reflect.DeepEqual(got, []core.Customer{{ID: 1, Name: "Ana"}}) {
		t.Fatalf("session should keep its snapshot, got %v", got)
	}

	sess.Close()
	sess.Close()
	if _, err := sess.Customers(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestReportsOverMemory(t *testing.T) {
	store, err := NewFromFile(writeSeed(t, seedJSON))
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	sess, _ := store.Session(context.Background())
	defer sess.Close()

	reg := report.DefaultRegistry()
	opts := report.Options{Clock: report.FixedClock(core.NewDate(2024, 5, 31))}
	monthly, err := reg.Run(context.Background(), report.KindMonthlyComparison, sess, opts)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if got := monthly.Cells(); !reflect.DeepEqual(got, [][]string{{"Receita", "100.00"}, {"Despesa", "40.00"}}) {
		t.Fatalf("unexpected comparison %v", got)
	}

	top, err := reg.Run(context.Background(), report.KindTopCustomers, sess, opts)
	if err != nil {
		t.Fatalf("top customers: %v", err)
	}
	if got := top.Cells(); !reflect.DeepEqual(got, [][]string{{"Ana", "200.00"}}) {
		t.Fatalf("unexpected ranking %v", got)
	}
}

func TestMalformedSeedDateOnlyMissesMonth(t *testing.T) {
	store, err := NewFromFile(writeSeed(t, `{"lancamentos": [
		{"id": 1, "tipo": "Receita", "valor": "10", "data": "05/2024"},
		{"id": 2, "tipo": "Receita", "valor": "5", "data": "2024-05-31T23:30:00-03:00"},
		{"id": 3, "tipo": "Receita", "valor": "2", "data": "2024-05-03"}
	]}`))
	if err != nil {
		t.Fatalf("a malformed date must not reject the seed: %v", err)
	}
	sess, _ := store.Session(context.Background())
	defer sess.Close()
	ctx := context.Background()

	cash, err := report.CashFlow(ctx, sess)
	if err != nil {
		t.Fatalf("cash flow: %v", err)
	}
	if got := cash.Cells(); !reflect.DeepEqual(got, [][]string{{"Receita", "17.00"}}) {
		t.Fatalf("unexpected cash flow %v", got)
	}

	monthly, err := report.MonthlyComparison(ctx, sess, report.FixedClock(core.NewDate(2024, 5, 20)))
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if !monthly.Rows[0].Value.Equal(core.MustMoney("2")) {
		t.Fatalf("only the UTC May entry should count, got %+v", monthly.Rows)
	}
}
