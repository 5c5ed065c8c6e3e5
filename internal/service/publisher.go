package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/queue"
)

// MatchPublisher emits a message after a match transition into the
// confirmed status. Publishing happens outside the database transaction
// and failures never affect the request outcome.
type MatchPublisher interface {
	PublishMatchConfirmed(ctx context.Context, event queue.MatchConfirmedEvent) error
}

// RabbitPublisher publishes match events to RabbitMQ on the default
// exchange, one short-lived connection per publish. Errors are logged
// and returned so callers can choose to ignore them.
type RabbitPublisher struct {
	url string
	log zerolog.Logger
}

// NewRabbitPublisher builds a publisher for the given broker URL.
func NewRabbitPublisher(url string, log zerolog.Logger) *RabbitPublisher {
	return &RabbitPublisher{url: url, log: log}
}

// PublishMatchConfirmed declares the durable ride.match.confirmed queue
// and publishes the event to it as a persistent JSON message.
func (p *RabbitPublisher) PublishMatchConfirmed(ctx context.Context, event queue.MatchConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"ride.match.confirmed", // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                     // default exchange
		"ride.match.confirmed", // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		pub,
	); err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: publish failed")
		return err
	}

	return nil
}
