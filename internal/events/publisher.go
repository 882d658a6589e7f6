// Package events emits report lifecycle notifications over NATS.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectReportCreated       = "jalanma.report.created"
	SubjectReportStatusChanged = "jalanma.report.status_changed"
)

// ReportEvent is the JSON payload published on report lifecycle subjects.
type ReportEvent struct {
	ReportID   string    `json:"report_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits report lifecycle events. Publishing is fire-and-forget:
// failures are logged, never surfaced to the request.
type Publisher interface {
	Publish(subject string, event ReportEvent)
	Close()
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("jalanma-backend"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(subject string, event ReportEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal report event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, body); err != nil {
		slog.Error("failed to publish report event", "subject", subject, "error", err)
	}
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		slog.Error("failed to drain nats connection", "error", err)
	}
}

// NoopPublisher is wired when NATS_URL is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, ReportEvent) {}

func (NoopPublisher) Close() {}
