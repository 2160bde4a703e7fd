package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RoutingReportGenerated is the routing key of ReportGenerated messages.
const RoutingReportGenerated = "report.generated"

// ReportGenerated tells listeners a report was built. It carries the shape
// of the result, not its rows.
type ReportGenerated struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Rows        int       `json:"rows"`
	Month       string    `json:"month,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReportGenerated stamps a new message with a random ID.
func NewReportGenerated(kind string, rows int, month string, at time.Time) *ReportGenerated {
	return &ReportGenerated{
		ID:          uuid.NewString(),
		Kind:        kind,
		Rows:        rows,
		Month:       month,
		GeneratedAt: at.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportGenerated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportGeneratedFromJSON decodes a message body.
func ReportGeneratedFromJSON(data []byte) (*ReportGenerated, error) {
	var msg ReportGenerated
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
