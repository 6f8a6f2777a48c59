// Package messaging publishes domain events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher implements adapter.EventPublisher on a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	mu       sync.Mutex
	channel  *amqp091.Channel
	exchange string
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish sends payload as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	msg, err := newPublishing(payload, time.Now().UTC())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	slog.DebugContext(ctx, "published event", "exchange", p.exchange, "routing_key", routingKey)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func newPublishing(payload any, now time.Time) (amqp091.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal message: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    now,
		Body:         body,
	}, nil
}

// noopPublisher drops every event.
type noopPublisher struct{}

// NewNoopPublisher returns a publisher used when no broker is configured.
func NewNoopPublisher() adapter.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, routingKey string, _ any) error {
	slog.DebugContext(ctx, "event dropped, no broker configured", "routing_key", routingKey)
	return nil
}
