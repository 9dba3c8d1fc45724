// Package events defines the domain events published to the message broker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"storerating/internal/metrics"
)

// Routing keys.
const (
	UserRegistered      = "user.registered"
	UserCreated         = "user.created"
	UserPasswordChanged = "user.password_changed"
	StoreCreated        = "store.created"
	RatingSubmitted     = "rating.submitted"
	RatingAmended       = "rating.amended"
)

// Event is the envelope of every published message.
type Event struct {
	ID         string                 `json:"eventId"`
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	ActorID    *uint                  `json:"actorId,omitempty"`
	EntityType string                 `json:"entityType"`
	EntityID   uint                   `json:"entityId"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Actor returns a pointer suitable for Event.ActorID.
func Actor(id uint) *uint {
	return &id
}

// Decode parses and checks an envelope received from the broker.
func Decode(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event failed: %w", err)
	}
	if _, err := uuid.Parse(ev.ID); err != nil {
		return Event{}, fmt.Errorf("event has invalid id %q", ev.ID)
	}
	if ev.Type == "" || ev.EntityType == "" {
		return Event{}, errors.New("event type and entity type are required")
	}
	return ev, nil
}

// Publisher hands a message to the broker.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// Emitter stamps and publishes events. Publishing is best effort: failures are
// logged and counted, never returned to the caller.
type Emitter struct {
	pub Publisher
	log *slog.Logger
	now func() time.Time
}

// NewEmitter returns an emitter; a nil publisher disables publishing.
func NewEmitter(pub Publisher, log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{pub: pub, log: log, now: time.Now}
}

// Emit publishes ev with its type as routing key.
func (e *Emitter) Emit(ctx context.Context, ev Event) {
	if e == nil || e.pub == nil {
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = e.now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		e.log.ErrorContext(ctx, "failed to marshal event", "type", ev.Type, "err", err)
		metrics.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return
	}
	if err := e.pub.Publish(ev.Type, body); err != nil {
		e.log.WarnContext(ctx, "failed to publish event", "type", ev.Type, "eventId", ev.ID, "err", err)
		metrics.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return
	}
	metrics.EventsPublished.WithLabelValues(ev.Type, "ok").Inc()
}
