package report

import (
	"context"
	"time"

	"finboard/internal/core"
)

// Source is the read-only data access a report runs against. It is
// query-language neutral; SQL and in-memory implementations bind the typed
// query values below to whatever they speak.
type Source interface {
	Customers(ctx context.Context) ([]core.Customer, error)
	Payables(ctx context.Context) ([]core.Payable, error)
	Receivables(ctx context.Context, q ReceivableQuery) ([]core.Receivable, error)
	LedgerEntries(ctx context.Context, q LedgerQuery) ([]core.LedgerEntry, error)
}

// ReceivableQuery restricts receivables by exact status. Empty means any.
type ReceivableQuery struct {
	Status string
}

// LedgerQuery restricts ledger entries by exact type and by the calendar
// month of their date. Zero values match everything.
type LedgerQuery struct {
	Type  string
	Month core.YearMonth
}

// Matches applies q to e with the same semantics SQL sources use.
func (q LedgerQuery) Matches(e core.LedgerEntry) bool {
	if q.Type != "" && e.Type != q.Type {
		return false
	}
	if !q.Month.IsZero() && !q.Month.ContainsDate(e.Date) {
		return false
	}
	return true
}

// Matches applies q to r.
func (q ReceivableQuery) Matches(r core.Receivable) bool {
	return q.Status == "" || r.Status == q.Status
}

// Clock supplies the current date to month-relative reports.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Session is a Source bound to one acquired connection. Close releases it
// and is safe to call more than once.
type Session interface {
	Source
	Close() error
}
