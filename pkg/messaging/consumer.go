package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/controlhoras/hours-backend/pkg/logger"
)

// MessageHandler is a function that handles a message
type MessageHandler func(ctx context.Context, event *Event) error

// maxRetries is how many dead-lettered redeliveries a message gets
const maxRetries = 3

// Consumer handles consuming events from RabbitMQ
type Consumer struct {
	rmq       *RabbitMQ
	queueName string
	handlers  map[string]MessageHandler
	fallback  MessageHandler
	logger    *logger.Logger
}

// NewConsumer creates a consumer on a durable queue named queueName
func NewConsumer(rmq *RabbitMQ, queueName string, log *logger.Logger) (*Consumer, error) {
	if _, err := rmq.DeclareQueue(queueName); err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return newConsumer(rmq, queueName, log), nil
}

// NewTemporaryConsumer creates a consumer on an exclusive queue that
// disappears with the connection
func NewTemporaryConsumer(rmq *RabbitMQ, log *logger.Logger) (*Consumer, error) {
	q, err := rmq.DeclareTemporaryQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to declare temporary queue: %w", err)
	}

	return newConsumer(rmq, q.Name, log), nil
}

func newConsumer(rmq *RabbitMQ, queueName string, log *logger.Logger) *Consumer {
	return &Consumer{
		rmq:       rmq,
		queueName: queueName,
		handlers:  make(map[string]MessageHandler),
		logger:    log.WithComponent("consumer"),
	}
}

// Subscribe subscribes to an exchange with a routing key pattern
func (c *Consumer) Subscribe(exchange, routingKeyPattern string) error {
	if err := c.rmq.DeclareExchange(exchange); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := c.rmq.BindQueue(c.queueName, exchange, routingKeyPattern); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	c.logger.Info().
		Str("queue", c.queueName).
		Str("exchange", exchange).
		Str("routing_key", routingKeyPattern).
		Msg("subscribed to exchange")

	return nil
}

// RegisterHandler registers a handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler MessageHandler) {
	c.handlers[eventType] = handler
}

// RegisterFallback registers a handler for event types without their own handler
func (c *Consumer) RegisterFallback(handler MessageHandler) {
	c.fallback = handler
}

// Start starts consuming messages from the queue. It returns once the
// delivery loop is running; the loop stops when ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	msgs, err := c.rmq.Channel().Consume(
		c.queueName, // queue
		"",          // consumer tag (auto-generated)
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info().Str("queue", c.queueName).Msg("consumer started")

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.Info().Str("queue", c.queueName).Msg("consumer stopped")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn().Msg("message channel closed")
					return
				}
				c.settle(msg, c.process(ctx, msg.Body, getRetryCount(msg.Headers)))
			}
		}
	}()

	return nil
}

// disposition is what happens to a delivery after processing
type disposition int

const (
	ack disposition = iota
	requeue
	deadLetter
)

func (c *Consumer) process(ctx context.Context, body []byte, retryCount int) disposition {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Error().Err(err).Msg("failed to unmarshal event")
		return deadLetter
	}

	ctx = WithCorrelationID(ctx, event.CorrelationID)

	handler, ok := c.handlers[event.Type]
	if !ok {
		handler = c.fallback
	}
	if handler == nil {
		c.logger.Debug().Str("event_type", event.Type).Msg("no handler registered for event type")
		return ack
	}

	if err := handler(ctx, &event); err != nil {
		c.logger.Error().
			Err(err).
			Str("event_type", event.Type).
			Str("event_id", event.ID).
			Int("retry_count", retryCount).
			Msg("failed to process event")

		if retryCount >= maxRetries {
			return deadLetter
		}
		return requeue
	}

	return ack
}

func (c *Consumer) settle(msg amqp.Delivery, d disposition) {
	var err error
	switch d {
	case ack:
		err = msg.Ack(false)
	case requeue:
		err = msg.Nack(false, true)
	case deadLetter:
		err = msg.Reject(false)
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to settle delivery")
	}
}

func getRetryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}

	if deaths, ok := headers["x-death"].([]interface{}); ok {
		for _, death := range deaths {
			if d, ok := death.(amqp.Table); ok {
				if count, ok := d["count"].(int64); ok {
					return int(count)
				}
			}
		}
	}

	return 0
}
