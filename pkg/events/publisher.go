package events

import (
	"context"
	"encoding/json"
	"time"

	"hotel-reservation/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Event names published on the broker. Downstream consumers (notification,
// payment reconciliation) bind to these queues.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationNoShow    = "reservation.no_show"
	EventCheckInCompleted     = "checkin.completed"
	EventCheckOutCompleted    = "checkout.completed"
)

// Publisher sends lifecycle events to RabbitMQ. A nil *Publisher is valid
// and drops every event, so the broker stays optional.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
}

// NewPublisher dials the broker. Returns nil when no URL is configured or
// the broker is unreachable; publishing then becomes a no-op.
func NewPublisher(config utils.AMQPConfig, log *zap.Logger) *Publisher {
	if config.URL == "" {
		log.Info("AMQP not configured, events disabled")
		return nil
	}

	conn, err := amqp.Dial(config.URL)
	if err != nil {
		log.Warn("AMQP unreachable, events disabled", zap.Error(err))
		return nil
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("AMQP channel open failed, events disabled", zap.Error(err))
		conn.Close()
		return nil
	}

	log.Info("AMQP connected")
	return &Publisher{
		conn: conn,
		ch:   ch,
		log:  log.With(zap.String("component", "events")),
	}
}

// Publish sends a persistent JSON message to a durable queue named after
// the event. Best-effort: failures are logged, never propagated.
func (p *Publisher) Publish(ctx context.Context, event string, payload any) {
	if p == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("Failed to encode event payload",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	if _, err := p.ch.QueueDeclare(event, true, false, false, false, nil); err != nil {
		p.log.Warn("Failed to declare event queue",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx, "", event, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.log.Warn("Failed to publish event",
			zap.String("event", event),
			zap.Error(err))
		return
	}

	p.log.Debug("Event published", zap.String("event", event))
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.ch.Close()
	p.conn.Close()
}
