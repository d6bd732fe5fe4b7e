package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/elysian-softech/account-service/internal/model"
)

type EventPublisher interface {
	PublishUserRegistered(user *model.User) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type UserRegisteredEvent struct {
	EventType    string       `json:"event_type"`
	EventID      uuid.UUID    `json:"event_id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Source       model.Source `json:"source"`
	RegisteredAt time.Time    `json:"registered_at"`
}

func (p *NatsPublisher) PublishUserRegistered(user *model.User) error {
	event := UserRegisteredEvent{
		EventType:    "user.registered",
		EventID:      uuid.New(),
		Email:        user.Email,
		Name:         user.Name,
		Source:       user.Source,
		RegisteredAt: user.CreatedAt,
	}

	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "error", err)
		return err
	}

	subject := "user.registered"
	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		slog.Error("Error publishing to NATS", "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject, "source", user.Source)

	return nil
}

// NoopPublisher stands in when NATS is unavailable at startup; the service
// keeps running without events.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(*model.User) error { return nil }
