// Package services provides external service integrations and technical concerns like tokens, caching, and messaging
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ProducerService publishes JSON messages to a durable queue
type ProducerService interface {
	Publish(ctx context.Context, queue string, message any) error
	Close() error
}

// RabbitMQProducer implements ProducerService on top of RabbitMQ
type RabbitMQProducer struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitMQProducer creates a producer for the given AMQP URL. The
// connection is established lazily on first publish and re-established
// after broker restarts.
func NewRabbitMQProducer(url string) ProducerService {
	return &RabbitMQProducer{url: url}
}

// ensureChannel returns a live channel, dialing the broker if needed
func (p *RabbitMQProducer) ensureChannel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to message broker: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open broker channel: %w", err)
	}
	p.ch = ch
	return ch, nil
}

// Publish declares queue as durable and publishes message as a persistent
// JSON delivery, so messages survive broker restarts.
func (p *RabbitMQProducer) Publish(ctx context.Context, queue string, message any) error {
	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message for queue %s: %w", queue, err)
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queue, err)
	}
	return nil
}

// Close tears down the channel and connection
func (p *RabbitMQProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
