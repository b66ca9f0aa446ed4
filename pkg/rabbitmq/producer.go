// Package rabbitmq publishes committed ledger events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/bank_backoffice_app/internal/core/ports"
	"github.com/rabbitmq/amqp091-go"
)

// Publisher is a ledger event publisher that owns broker resources.
type Publisher interface {
	ports.LedgerEventPublisher
	Close()
}

// EventProducer holds the RabbitMQ connection and channel for publishing messages.
type EventProducer struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *slog.Logger
}

var _ Publisher = (*EventProducer)(nil)

// NoopProducer drops every event. It is used when no broker is configured or reachable.
type NoopProducer struct {
	logger *slog.Logger
}

var _ Publisher = (*NoopProducer)(nil)

// NewNoopProducer creates a publisher that only logs at debug level.
func NewNoopProducer(logger *slog.Logger) *NoopProducer {
	return &NoopProducer{logger: logger}
}

func (p *NoopProducer) PublishLedgerEvent(ctx context.Context, event ports.LedgerEvent) error {
	p.logger.DebugContext(ctx, "Ledger event publish skipped", slog.String("routing_key", RoutingKey(event)))
	return nil
}

func (p *NoopProducer) Close() {}

// RoutingKey is the topic routing key an event is published under, e.g. "ledger.transfer".
func RoutingKey(event ports.LedgerEvent) string {
	return "ledger." + string(event.Kind)
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	// Drop stray characters before the scheme.
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewEventProducer dials the broker and declares the durable topic exchange.
func NewEventProducer(amqpURL, exchange string, logger *slog.Logger) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	// Bounded dial timeout so startup does not hang indefinitely
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	p := &EventProducer{conn: conn, exchange: exchange, logger: logger}
	if err := p.openChannel(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

// openChannel (re)opens the channel and declares the exchange. Callers hold p.mu or own p exclusively.
func (p *EventProducer) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		ch.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}
	p.channel = ch
	return nil
}

// PublishLedgerEvent publishes event as JSON. A failed publish reopens the channel and retries once.
func (p *EventProducer) PublishLedgerEvent(ctx context.Context, event ports.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}
	key := RoutingKey(event)

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, key, false, false, msg)
	if err == nil {
		return nil
	}

	p.logger.WarnContext(ctx, "Ledger event publish failed; reopening channel",
		slog.String("exchange", p.exchange),
		slog.String("routing_key", key),
		slog.String("error", err.Error()))
	if reopenErr := p.openChannel(); reopenErr != nil {
		return errors.Join(err, reopenErr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, key, false, false, msg)
}

// Close gracefully closes the channel and connection to RabbitMQ.
func (p *EventProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NewPublisher returns an EventProducer for amqpURL, or a NoopProducer when the URL is
// empty or the broker cannot be reached at startup.
func NewPublisher(amqpURL, exchange string, logger *slog.Logger) Publisher {
	if strings.TrimSpace(amqpURL) == "" {
		return NewNoopProducer(logger)
	}
	producer, err := NewEventProducer(amqpURL, exchange, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, ledger events disabled", slog.String("error", err.Error()))
		return NewNoopProducer(logger)
	}
	logger.Info("Ledger event producer connected", slog.String("exchange", exchange))
	return producer
}
