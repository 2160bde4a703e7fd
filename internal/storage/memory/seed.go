package memory

import (
	"encoding/json"
	"fmt"

	"finboard/internal/core"
)

// seed mirrors the relational column names so a dump of the SQL tables can
// be loaded as-is. Amounts are validated on load; dates stay text.
type seed struct {
	Clientes []struct {
		ID       int64  `json:"id"`
		Nome     string `json:"nome"`
		Email    string `json:"email"`
		Telefone string `json:"telefone"`
	} `json:"clientes"`
	ContasPagar []struct {
		ID         int64  `json:"id"`
		Fornecedor string `json:"fornecedor"`
		Valor      string `json:"valor"`
		Vencimento string `json:"vencimento"`
		Status     string `json:"status"`
	} `json:"contas_pagar"`
	ContasReceber []struct {
		ID         int64  `json:"id"`
		ClienteID  int64  `json:"cliente_id"`
		Valor      string `json:"valor"`
		Vencimento string `json:"vencimento"`
		Status     string `json:"status"`
	} `json:"contas_receber"`
	Lancamentos []struct {
		ID        int64  `json:"id"`
		Tipo      string `json:"tipo"`
		Valor     string `json:"valor"`
		Data      string `json:"data"`
		Descricao string `json:"descricao"`
	} `json:"lancamentos"`
}

func decodeSeed(raw []byte) (Dataset, error) {
	var s seed
	if err := json.Unmarshal(raw, &s); err != nil {
		return Dataset{}, err
	}

	var d Dataset
	for _, c := range s.Clientes {
		d.Customers = append(d.Customers, core.Customer{ID: c.ID, Name: c.Nome, Email: c.Email, Phone: c.Telefone})
	}
	for _, p := range s.ContasPagar {
		amount, err := parseAmount(p.Valor)
		if err != nil {
			return Dataset{}, fmt.Errorf("contas_pagar %d: %w", p.ID, err)
		}
		d.Payables = append(d.Payables, core.Payable{
			ID: p.ID, Supplier: p.Fornecedor, Amount: amount, AmountText: p.Valor, DueDate: p.Vencimento, Status: p.Status,
		})
	}
	for _, r := range s.ContasReceber {
		amount, err := parseAmount(r.Valor)
		if err != nil {
			return Dataset{}, fmt.Errorf("contas_receber %d: %w", r.ID, err)
		}
		d.Receivables = append(d.Receivables, core.Receivable{
			ID: r.ID, CustomerID: r.ClienteID, Amount: amount, AmountText: r.Valor, DueDate: r.Vencimento, Status: r.Status,
		})
	}
	for _, l := range s.Lancamentos {
		amount, err := parseAmount(l.Valor)
		if err != nil {
			return Dataset{}, fmt.Errorf("lancamentos %d: %w", l.ID, err)
		}
		d.Ledger = append(d.Ledger, core.LedgerEntry{
			ID: l.ID, Type: l.Tipo, Amount: amount, AmountText: l.Valor, Date: l.Data, Description: l.Descricao,
		})
	}
	return d, nil
}

func parseAmount(amount string) (core.Money, error) {
	m, err := core.ParseMoney(amount)
	if err != nil {
		return core.Money{}, fmt.Errorf("valor %q: %w", amount, err)
	}
	return m, nil
}
