package main

import (
	"context"
	"errors"
	"testing"

	"finboard/internal/core"
	"finboard/internal/dashboard"
	"finboard/internal/report"
	"finboard/internal/sheets/memory"
	memstore "finboard/internal/storage/memory"
)

type noCustomers struct {
	report.Session
}

func (noCustomers) Customers(context.Context) ([]core.Customer, error) {
	return nil, errors.New("no such table: clientes")
}

func newService(broken bool) *dashboard.Service {
	store := memstore.New(memstore.Dataset{
		Customers:   []core.Customer{{ID: 1, Name: "Ana"}},
		Payables:    []core.Payable{{ID: 1, Supplier: "A", Amount: core.MustMoney("50")}},
		Receivables: []core.Receivable{{ID: 1, CustomerID: 1, Amount: core.MustMoney("200"), Status: core.StatusReceived}},
		Ledger:      []core.LedgerEntry{{ID: 1, Type: core.LedgerRevenue, Amount: core.MustMoney("100"), Date: "2024-05-01"}},
	})
	return dashboard.New(func(ctx context.Context) (report.Session, error) {
		sess, err := store.Session(ctx)
		if err != nil {
			return nil, err
		}
		if broken {
			return noCustomers{sess}, nil
		}
		return sess, nil
	}, dashboard.Options{Clock: report.FixedClock(core.NewDate(2024, 5, 31))})
}

func TestExport(t *testing.T) {
	w := memory.New()
	n, err := export(context.Background(), newService(false), w, report.ReportsEntry)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 4 || len(w.Tabs()) != 4 {
		t.Fatalf("expected 4 tabs, got %d (%v)", n, w.Tabs())
	}
	if got := w.Values("Comparação Receita vs Despesa 2024-05"); len(got) != 3 {
		t.Fatalf("expected header plus two rows, got %v", got)
	}
}

func TestExportSkipsFailedSections(t *testing.T) {
	w := memory.New()
	n, err := export(context.Background(), newService(true), w, report.ReportsEntry)
	if err == nil {
		t.Fatal("expected the failed report to be reported")
	}
	if n != 3 || len(w.Tabs()) != 3 {
		t.Fatalf("expected the other 3 tables to be written, got %d", n)
	}
}

func TestExportUnknownMenu(t *testing.T) {
	if _, err := export(context.Background(), newService(false), memory.New(), "dre"); !errors.Is(err, report.ErrUnknownReport) {
		t.Fatalf("expected ErrUnknownReport, got %v", err)
	}
}
