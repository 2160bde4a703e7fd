package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/report"
)

// Session runs report queries on one dedicated connection.
type Session struct {
	conn    *sql.Conn
	dialect Dialect
	once    sync.Once
	err     error
}

var _ report.Session = (*Session)(nil)

// Close returns the connection to the pool.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.err = s.conn.Close()
	})
	return s.err
}

func (s *Session) Customers(ctx context.Context) ([]core.Customer, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, nome, email, telefone FROM clientes`)
	if err != nil {
		return nil, fmt.Errorf("query clientes: %w", err)
	}
	defer rows.Close()

	var out []core.Customer
	for rows.Next() {
		var (
			c                  core.Customer
			name, email, phone sql.NullString
		)
		if err := rows.Scan(&c.ID, &name, &email, &phone); err != nil {
			return nil, fmt.Errorf("scan clientes: %w", err)
		}
		c.Name, c.Email, c.Phone = name.String, email.String, phone.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clientes: %w", err)
	}
	return out, nil
}

func (s *Session) Payables(ctx context.Context) ([]core.Payable, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, fornecedor, valor, `+asText("valor")+`, `+asText("vencimento")+`, status FROM contas_pagar`)
	if err != nil {
		return nil, fmt.Errorf("query contas_pagar: %w", err)
	}
	defer rows.Close()

	var out []core.Payable
	for rows.Next() {
		var (
			p                                 core.Payable
			supplier, amountText, due, status sql.NullString
			amount                            decimal.NullDecimal
		)
		if err := rows.Scan(&p.ID, &supplier, &amount, &amountText, &due, &status); err != nil {
			return nil, fmt.Errorf("scan contas_pagar: %w", err)
		}
		p.Supplier, p.Status, p.DueDate = supplier.String, status.String, due.String
		p.Amount, p.AmountText = money(amount), amountText.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contas_pagar: %w", err)
	}
	return out, nil
}

func (s *Session) Receivables(ctx context.Context, q report.ReceivableQuery) ([]core.Receivable, error) {
	w := &where{dialect: s.dialect}
	if q.Status != "" {
		w.equals("status", q.Status)
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, cliente_id, valor, `+asText("valor")+`, `+asText("vencimento")+`, status FROM contas_receber`+w.String(),
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("query contas_receber: %w", err)
	}
	defer rows.Close()

	var out []core.Receivable
	for rows.Next() {
		var (
			r                       core.Receivable
			customerID              sql.NullInt64
			amountText, due, status sql.NullString
			amount                  decimal.NullDecimal
		)
		if err := rows.Scan(&r.ID, &customerID, &amount, &amountText, &due, &status); err != nil {
			return nil, fmt.Errorf("scan contas_receber: %w", err)
		}
		// A NULL customer reads as id 0, which never resolves.
		r.CustomerID = customerID.Int64
		r.Status, r.DueDate = status.String, due.String
		r.Amount, r.AmountText = money(amount), amountText.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contas_receber: %w", err)
	}
	return out, nil
}

func (s *Session) LedgerEntries(ctx context.Context, q report.LedgerQuery) ([]core.LedgerEntry, error) {
	w := &where{dialect: s.dialect}
	if q.Type != "" {
		w.equals("tipo", q.Type)
	}
	if !q.Month.IsZero() {
		w.equals(s.dialect.monthOf("data"), q.Month.String())
	}
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, tipo, valor, `+asText("valor")+`, `+asText("data")+`, descricao FROM lancamentos`+w.String(),
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("query lancamentos: %w", err)
	}
	defer rows.Close()

	var out []core.LedgerEntry
	for rows.Next() {
		var (
			e                                core.LedgerEntry
			typ, amountText, date, descricao sql.NullString
			amount                           decimal.NullDecimal
		)
		if err := rows.Scan(&e.ID, &typ, &amount, &amountText, &date, &descricao); err != nil {
			return nil, fmt.Errorf("scan lancamentos: %w", err)
		}
		e.Type, e.Description, e.Date = typ.String, descricao.String, date.String
		e.Amount, e.AmountText = money(amount), amountText.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lancamentos: %w", err)
	}
	return out, nil
}

// money maps a NULL valor to zero.
func money(d decimal.NullDecimal) core.Money {
	if !d.Valid {
		return core.Zero
	}
	return core.NewMoney(d.Decimal)
}

// asText reads a column in the text form the database stores it in. It
// keeps drivers from converting DATE columns to time.Time.
func asText(column string) string {
	return "CAST(" + column + " AS TEXT)"
}
