package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
)

const (
	envelopeVersion       = 1
	defaultPublishTimeout = 10 * time.Second
)

// Envelope is the stable payload structure of every published event.
type Envelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	EventType  string          `json:"eventType"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// Publisher is the subset of *pubsub.Publisher used to emit events.
type Publisher interface {
	Publish(context.Context, *pubsub.Message) PublishResult
}

// PublishResult resolves the server-assigned message id.
type PublishResult interface {
	Get(context.Context) (string, error)
}

// WrapPublisher adapts a GCP publisher handle; nil stays nil.
func WrapPublisher(p *pubsub.Publisher) Publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*pubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *pubsub.Message) PublishResult {
	return p.Publisher.Publish(ctx, msg)
}

// EventPublisher wraps payloads into an Envelope and waits for the publish ack.
type EventPublisher struct {
	pub     Publisher
	timeout time.Duration
	now     func() time.Time
}

// NewEventPublisher builds an EventPublisher on top of pub.
func NewEventPublisher(pub Publisher) (*EventPublisher, error) {
	if pub == nil {
		return nil, errors.New("publisher required")
	}
	return &EventPublisher{pub: pub, timeout: defaultPublishTimeout, now: time.Now}, nil
}

// PublishEvent emits data under eventType keyed by aggregateID and returns the event id.
func (p *EventPublisher) PublishEvent(ctx context.Context, eventType, aggregateID string, data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	envelope := Envelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: p.now().UTC(),
		Data:       raw,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}

	msg := &pubsub.Message{
		Data: body,
		Attributes: map[string]string{
			"event_id":     envelope.EventID,
			"event_type":   eventType,
			"aggregate_id": aggregateID,
			"occurred_at":  envelope.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	result := p.pub.Publish(publishCtx, msg)
	if result == nil {
		return "", fmt.Errorf("publisher returned nil for %s", eventType)
	}
	if _, err := result.Get(publishCtx); err != nil {
		return "", fmt.Errorf("publish %s: %w", eventType, err)
	}
	return envelope.EventID, nil
}
