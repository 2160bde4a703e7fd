package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finboard/internal/core"
	"finboard/internal/report"
)

// statusFor maps the report error taxonomy onto HTTP.
func statusFor(err error) int {
	var unavailable *report.UnavailableError
	switch {
	case errors.Is(err, report.ErrUnknownReport), errors.Is(err, report.ErrUnknownEntity):
		return http.StatusNotFound
	case errors.As(err, &unavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// noticeFor is the user-facing message for a failure.
func noticeFor(err error) string {
	switch statusFor(err) {
	case http.StatusNotFound:
		return "Relatório não encontrado."
	case http.StatusServiceUnavailable:
		return "Banco de dados indisponível. Tente novamente em instantes."
	default:
		return "Não foi possível gerar este relatório."
	}
}

// formatReais formats a value as Brazilian currency ("R$ 1.234,56").
func formatReais(m core.Money) string {
	s := m.Amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if m.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, errorType, msg string) {
	writeJSON(w, status, errorBody{Error: errorType, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
