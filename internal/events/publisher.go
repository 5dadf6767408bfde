package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	// SubjectSearchCompleted fires after a provider call that answered,
	// with or without offers.
	SubjectSearchCompleted = "concierge.search.completed"
	// SubjectSearchFailed fires when the provider call errored.
	SubjectSearchFailed = "concierge.search.failed"
)

// SearchEvent describes one completed or failed flight search for downstream
// consumers (analytics, alerting).
type SearchEvent struct {
	EventID   string `json:"event_id"`
	SessionID string `json:"session_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Date      string `json:"date"`
	Offers    int    `json:"offers"`
	Timestamp string `json:"timestamp"`
}

func NewSearchEvent(sessionID, from, to, date string, offers int) SearchEvent {
	return SearchEvent{
		EventID:   uuid.NewString(),
		SessionID: sessionID,
		From:      from,
		To:        to,
		Date:      date,
		Offers:    offers,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.conn.Publish(subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
