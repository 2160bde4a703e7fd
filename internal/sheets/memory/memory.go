// Package memory keeps exported tabs in process, for tests and dry runs.
package memory

import (
	"context"
	"slices"
	"sync"
)

type Writer struct {
	mu    sync.Mutex
	order []string
	tabs  map[string][][]any
}

func New() *Writer {
	return &Writer{tabs: map[string][][]any{}}
}

// WriteTable implements sheets.TableWriter.
func (w *Writer) WriteTable(_ context.Context, tab string, values [][]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tabs[tab]; !ok {
		w.order = append(w.order, tab)
	}
	w.tabs[tab] = values
	return nil
}

// Tabs lists tab names in the order they were first written.
func (w *Writer) Tabs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.order)
}

// Values returns the last contents written to tab.
func (w *Writer) Values(tab string) [][]any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tabs[tab]
}
