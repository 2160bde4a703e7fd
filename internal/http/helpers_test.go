package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/report"
)

func TestFormatReais(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"7.5", "R$ 7,50"},
		{"150", "R$ 150,00"},
		{"1200", "R$ 1.200,00"},
		{"1234567.891", "R$ 1.234.567,89"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := formatReais(core.MustMoney(tt.in)); got != tt.want {
				t.Fatalf("formatReais(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := formatReais(core.NewMoney(decimal.NewFromInt(-40))); got != "-R$ 40,00" {
		t.Fatalf("unexpected negative rendering %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown report", fmt.Errorf("%w: %q", report.ErrUnknownReport, "dre"), http.StatusNotFound},
		{"unknown entity", report.ErrUnknownEntity, http.StatusNotFound},
		{"unavailable", &report.UnavailableError{Err: errors.New("refused")}, http.StatusServiceUnavailable},
		{"slot wait timed out", fmt.Errorf("wait: %w", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"query", &report.QueryError{Kind: report.KindCashFlow, Err: errors.New("syntax")}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
