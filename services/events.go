package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"friendgraph-api/models"
	"github.com/nats-io/nats.go"
)

// EventPublisher announces committed relationship changes to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RelationshipEvent) error
}

// SubjectPrefix is prepended to the event type to form the NATS subject.
const SubjectPrefix = "friendgraph."

type NatsEventPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

func NewNatsEventPublisher(nc *nats.Conn, logger *slog.Logger) *NatsEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NatsEventPublisher{nc: nc, logger: logger}
}

func (p *NatsEventPublisher) Publish(ctx context.Context, event models.RelationshipEvent) error {
	msg, err := eventMessage(ctx, event)
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "publishing relationship event", "subject", msg.Subject, "actor_id", event.ActorID, "target_id", event.TargetID)
	return p.nc.PublishMsg(msg)
}

func eventMessage(ctx context.Context, event models.RelationshipEvent) (*nats.Msg, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshalling error: %w", err)
	}

	msg := &nats.Msg{
		Subject: SubjectPrefix + string(event.Type),
		Data:    data,
		Header:  nats.Header{},
	}
	if requestID, ok := ctx.Value(RequestIDKey{}).(string); ok && requestID != "" {
		msg.Header.Set("X-Request-ID", requestID)
	}
	return msg, nil
}

// LogEventPublisher writes events to the log. Used when no broker is configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(ctx context.Context, event models.RelationshipEvent) error {
	p.logger.InfoContext(ctx, "relationship event",
		"type", event.Type,
		"actor_id", event.ActorID,
		"target_id", event.TargetID,
	)
	return nil
}

// RequestIDKey is the context key under which the HTTP layer stores the request id.
type RequestIDKey struct{}
