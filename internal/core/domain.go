package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Stored enumeration values. The store keeps the Portuguese spelling used by
// the data-entry surface; reports compare against these exactly.
const (
	LedgerRevenue = "Receita"
	LedgerExpense = "Despesa"

	StatusPending  = "Pendente"
	StatusReceived = "Recebido"
	StatusPaid     = "Pago"
)

// Entity names one of the four relations the dashboard can list.
type Entity string

const (
	EntityCustomer   Entity = "clientes"
	EntityPayable    Entity = "contas_pagar"
	EntityReceivable Entity = "contas_receber"
	EntityLedger     Entity = "lancamentos"
)

type (
	Customer struct {
		ID    int64
		Name  string
		Email string
		Phone string
	}

	// Amount text and dates are kept as the store returned them. Dates are
	// parsed only by the code that needs them, so one malformed value does
	// not spoil reads that never look at it.
	Payable struct {
		ID         int64
		Supplier   string // free text, not normalized to a customer
		Amount     Money
		AmountText string // empty when the source keeps no text form
		DueDate    string // empty when not set
		Status     string
	}

	Receivable struct {
		ID         int64
		CustomerID int64
		Amount     Money
		AmountText string
		DueDate    string
		Status     string
	}

	LedgerEntry struct {
		ID          int64
		Type        string
		Amount      Money
		AmountText  string
		Date        string
		Description string
	}

	// YearMonth is a calendar month, the granularity of ledger filtering.
	YearMonth struct {
		Year  int
		Month time.Month
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidYearMonth = errors.New("invalid year-month")
)

// Entities lists the relations in menu order.
func Entities() []Entity {
	return []Entity{EntityCustomer, EntityPayable, EntityReceivable, EntityLedger}
}

// IsValid returns true if e is one of the four known relations.
func (e Entity) IsValid() bool {
	switch e {
	case EntityCustomer, EntityPayable, EntityReceivable, EntityLedger:
		return true
	default:
		return false
	}
}

// Columns returns the declared attribute order of the relation.
func (e Entity) Columns() []string {
	switch e {
	case EntityCustomer:
		return []string{"id", "nome", "email", "telefone"}
	case EntityPayable:
		return []string{"id", "fornecedor", "valor", "vencimento", "status"}
	case EntityReceivable:
		return []string{"id", "cliente_id", "valor", "vencimento", "status"}
	case EntityLedger:
		return []string{"id", "tipo", "valor", "data", "descricao"}
	default:
		return nil
	}
}

func (e Entity) String() string {
	return string(e)
}

// YearMonthOf truncates t to its calendar month.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return YearMonthOf(t), nil
}

// IsZero reports whether ym is unset. A zero YearMonth matches every month.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Contains reports whether t falls in ym. Offsets are converted to UTC
// first, as strftime does.
func (ym YearMonth) Contains(t time.Time) bool {
	t = t.UTC()
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// ContainsDate is Contains over stored date text. Empty or unparseable
// text falls in no month.
func (ym YearMonth) ContainsDate(s string) bool {
	t, err := ParseDate(s)
	if err != nil || t.IsZero() {
		return false
	}
	return ym.Contains(t)
}

// String formats ym as "YYYY-MM", the same key strftime('%Y-%m') yields.
func (ym YearMonth) String() string {
	if ym.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// ParseDate parses a stored date value. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NewDate creates a UTC midnight date from year, month, day.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
