package report

import (
	"errors"
	"fmt"
)

// Error types for consistent failure reporting across reports.

var (
	// ErrUnknownReport is returned when dispatch gets a kind outside Kinds.
	ErrUnknownReport = errors.New("unknown report")
	// ErrUnknownEntity is returned when the lister gets a relation outside core.Entities.
	ErrUnknownEntity = errors.New("unknown entity")
)

// UnavailableError indicates the data source could not be reached or opened.
// It is fatal for the whole interaction.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("data source unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// QueryError indicates a query or scan failed while building one report.
// It is fatal for that report only.
type QueryError struct {
	Kind Kind
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("report %s: query failed: %v", e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// queryFailed wraps err as a QueryError unless it already carries a
// classification.
func queryFailed(kind Kind, err error) error {
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return err
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Kind: kind, Err: err}
}

// ErrorType classifies err for logs and metrics labels.
func ErrorType(err error) string {
	var unavailable *UnavailableError
	var qe *QueryError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unavailable):
		return "unavailable"
	case errors.As(err, &qe):
		return "query"
	case errors.Is(err, ErrUnknownReport), errors.Is(err, ErrUnknownEntity):
		return "not_found"
	default:
		return "internal"
	}
}
