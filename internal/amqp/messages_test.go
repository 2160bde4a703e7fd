package amqp

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewReportGenerated(t *testing.T) {
	at := time.Date(2024, 5, 20, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	a := NewReportGenerated("monthly_comparison", 2, "2024-05", at)
	b := NewReportGenerated("monthly_comparison", 2, "2024-05", at)

	if _, err := uuid.Parse(a.ID); err != nil {
		t.Fatalf("expected uuid id, got %q: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct message ids")
	}
	if a.GeneratedAt.Location() != time.UTC || !a.GeneratedAt.Equal(at) {
		t.Fatalf("expected UTC timestamp equal to input, got %v", a.GeneratedAt)
	}
}

func TestReportGeneratedJSON(t *testing.T) {
	msg := NewReportGenerated("cash_flow", 3, "", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), `"month"`) {
		t.Fatalf("empty month should be omitted: %s", body)
	}
	if !strings.Contains(string(body), `"generated_at":"2024-05-01T00:00:00Z"`) {
		t.Fatalf("unexpected body %s", body)
	}

	got, err := ReportGeneratedFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != msg.ID || got.Kind != msg.Kind || got.Rows != msg.Rows || !got.GeneratedAt.Equal(msg.GeneratedAt) {
		t.Fatalf("expected %+v, got %+v", msg, got)
	}

	if _, err := ReportGeneratedFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error for truncated body")
	}
}
