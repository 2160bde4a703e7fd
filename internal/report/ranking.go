package report

import (
	"context"

	"finboard/internal/core"
)

// TopCustomersLimit caps the ranking.
const TopCustomersLimit = 5

// UnresolvedFunc is told about each receivable whose customer does not exist.
type UnresolvedFunc func(ctx context.Context, r core.Receivable)

// TopCustomers ranks customers by the sum of their settled receivables and
// keeps the first TopCustomersLimit.
//
// Receivables are inner-joined to customers: one pointing at a missing
// customer is left out of the ranking. onUnresolved, when not nil, is
// called for each of them.
func TopCustomers(ctx context.Context, src Source, onUnresolved UnresolvedFunc) (Table, error) {
	receivables, err := src.Receivables(ctx, ReceivableQuery{Status: core.StatusReceived})
	if err != nil {
		return Table{}, queryFailed(KindTopCustomers, err)
	}
	customers, err := src.Customers(ctx)
	if err != nil {
		return Table{}, queryFailed(KindTopCustomers, err)
	}

	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	byCustomer := newGroup[int64]()
	for _, r := range receivables {
		// Not every source honours the status filter.
		if r.Status != core.StatusReceived {
			continue
		}
		if _, ok := names[r.CustomerID]; !ok {
			if onUnresolved != nil {
				onUnresolved(ctx, r)
			}
			continue
		}
		byCustomer.add(r.CustomerID, r.Amount)
	}

	t := newTable(KindTopCustomers, "Cliente", "total_receita")
	t.Chart = ChartBar
	t.ValueLabels = true
	for i, customerID := range byCustomer.ranked() {
		if i == TopCustomersLimit {
			break
		}
		t.addAggregate(names[customerID], byCustomer.total(customerID))
	}
	return t, nil
}
