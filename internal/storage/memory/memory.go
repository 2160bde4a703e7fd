// Package memory is an in-process data source for development and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"finboard/internal/core"
	"finboard/internal/report"
)

// ErrSessionClosed is returned by reads on a released session.
var ErrSessionClosed = errors.New("memory: session closed")

// Dataset holds the four relations in store order.
type Dataset struct {
	Customers   []core.Customer
	Payables    []core.Payable
	Receivables []core.Receivable
	Ledger      []core.LedgerEntry
}

type Store struct {
	mu   sync.RWMutex
	data Dataset
}

func New(data Dataset) *Store {
	return &Store{data: data}
}

// NewFromFile loads a JSON seed. A missing file yields an empty store.
func NewFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(Dataset{}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	data, err := decodeSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return New(data), nil
}

// Session snapshots the current data. Later writes to the store are not
// visible through it.
func (s *Store) Session(_ context.Context) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Session{data: Dataset{
		Customers:   slices.Clone(s.data.Customers),
		Payables:    slices.Clone(s.data.Payables),
		Receivables: slices.Clone(s.data.Receivables),
		Ledger:      slices.Clone(s.data.Ledger),
	}}, nil
}

// Replace swaps the whole dataset.
func (s *Store) Replace(data Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Session reads one snapshot of a Store.
type Session struct {
	mu     sync.Mutex
	data   Dataset
	closed bool
}

var _ report.Session = (*Session)(nil)

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) Customers(ctx context.Context) ([]core.Customer, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.data.Customers), nil
}

func (s *Session) Payables(ctx context.Context) ([]core.Payable, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.data.Payables), nil
}

func (s *Session) Receivables(ctx context.Context, q report.ReceivableQuery) ([]core.Receivable, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var out []core.Receivable
	for _, r := range s.data.Receivables {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Session) LedgerEntries(ctx context.Context, q report.LedgerQuery) ([]core.LedgerEntry, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var out []core.LedgerEntry
	for _, e := range s.data.Ledger {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
