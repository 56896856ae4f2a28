package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/pkg/rabbitmq"
)

// Bus distributes change events between instances over a fanout exchange.
// Each instance binds an exclusive queue, so every instance sees every
// event and drops its own by instance id.
type Bus interface {
	Publish(ctx context.Context, event models.ChangeEvent) error
	Consume(ctx context.Context, handler func(models.ChangeEvent)) error
	Close() error
}

type amqpBus struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	logger   zerolog.Logger
}

func NewBus(url, exchange string, logger zerolog.Logger) (Bus, error) {
	conn, err := rabbitmq.NewConnection(url)
	if err != nil {
		return nil, err
	}

	channel, err := rabbitmq.NewChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Server-named, exclusive, auto-deleted with the connection. Events are
	// only useful to live instances, so nothing should queue up for a dead one.
	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	logger.Info().
		Str("exchange", exchange).
		Str("queue", queue.Name).
		Msg("Connected to event bus")

	return &amqpBus{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    queue.Name,
		logger:   logger,
	}, nil
}

func (b *amqpBus) Publish(ctx context.Context, event models.ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	return b.channel.PublishWithContext(ctx, b.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
}

// Consume pumps events to the handler until ctx ends. Malformed messages
// are acked and dropped.
func (b *amqpBus) Consume(ctx context.Context, handler func(models.ChangeEvent)) error {
	deliveries, err := b.channel.Consume(b.queue, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					b.logger.Warn().Msg("Event bus delivery channel closed")
					return
				}

				var event models.ChangeEvent
				if err := json.Unmarshal(delivery.Body, &event); err != nil {
					b.logger.Error().Err(err).Msg("Failed to decode change event")
					delivery.Ack(false)
					continue
				}

				handler(event)
				delivery.Ack(false)
			}
		}
	}()

	return nil
}

func (b *amqpBus) Close() error {
	if err := b.channel.Close(); err != nil {
		b.logger.Error().Err(err).Msg("Failed to close event bus channel")
	}
	return b.conn.Close()
}

// noopBus stands in when cross-instance events are disabled. Local
// subscribers are still notified through the hub.
type noopBus struct{}

func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(ctx context.Context, event models.ChangeEvent) error { return nil }

func (noopBus) Consume(ctx context.Context, handler func(models.ChangeEvent)) error { return nil }

func (noopBus) Close() error { return nil }
