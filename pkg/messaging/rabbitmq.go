package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/controlhoras/hours-backend/pkg/config"
	"github.com/controlhoras/hours-backend/pkg/logger"
)

// RabbitMQ manages the connection to RabbitMQ
type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	config   *config.RabbitMQConfig
	connName string
	logger   *logger.Logger
	mu       sync.RWMutex
	closed   bool
}

// New creates a new RabbitMQ connection. connName shows up in the broker's
// management UI.
func New(cfg *config.RabbitMQConfig, connName string, log *logger.Logger) (*RabbitMQ, error) {
	rmq := &RabbitMQ{
		config:   cfg,
		connName: connName,
		logger:   log.WithComponent("rabbitmq"),
	}

	if err := rmq.connect(); err != nil {
		return nil, err
	}

	return rmq, nil
}

func (r *RabbitMQ) connect() error {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(r.connName)

	conn, err := amqp.DialConfig(r.config.URL, amqp.Config{
		Heartbeat:  10 * time.Second,
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.Qos(r.config.PrefetchCount, 0, false); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	r.conn = conn
	r.channel = channel

	r.logger.Info().Str("connection", r.connName).Msg("connected to RabbitMQ")
	return nil
}

// Channel returns the current channel
func (r *RabbitMQ) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

// Close closes the RabbitMQ connection
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to close channel")
		}
	}

	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}

	r.logger.Info().Msg("RabbitMQ connection closed")
	return nil
}

// Health returns the health status of RabbitMQ
func (r *RabbitMQ) Health() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := map[string]string{
		"status": "up",
	}

	if r.conn == nil || r.conn.IsClosed() {
		status["status"] = "down"
		status["error"] = "connection closed"
	}

	return status
}

// DeclareExchange declares a durable topic exchange
func (r *RabbitMQ) DeclareExchange(name string) error {
	return r.Channel().ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
}

// DeclareQueue declares a durable queue that dead-letters rejected messages
func (r *RabbitMQ) DeclareQueue(name string) (amqp.Queue, error) {
	return r.Channel().QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange": ExchangeDeadLetter,
		},
	)
}

// DeclareTemporaryQueue declares a server-named exclusive queue that is
// removed when the connection closes
func (r *RabbitMQ) DeclareTemporaryQueue() (amqp.Queue, error) {
	return r.Channel().QueueDeclare(
		"",    // server generated name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
}

// DeclareDeadLetterQueue declares the dead letter exchange and the service's queue on it
func (r *RabbitMQ) DeclareDeadLetterQueue(serviceName string) error {
	ch := r.Channel()

	if err := ch.ExchangeDeclare(ExchangeDeadLetter, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLX exchange: %w", err)
	}

	queueName := fmt.Sprintf("dlq.%s", serviceName)
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "#", ExchangeDeadLetter, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ: %w", err)
	}

	return nil
}

// BindQueue binds a queue to an exchange with a routing key pattern
func (r *RabbitMQ) BindQueue(queueName, exchange, routingKey string) error {
	return r.Channel().QueueBind(
		queueName,
		routingKey,
		exchange,
		false,
		nil,
	)
}

// Watch reconnects whenever the broker drops the connection, until ctx is done
// or Close is called.
func (r *RabbitMQ) Watch(ctx context.Context) {
	for {
		r.mu.RLock()
		conn := r.conn
		r.mu.RUnlock()

		closed := conn.NotifyClose(make(chan *amqp.Error, 1))

		select {
		case <-ctx.Done():
			return
		case amqpErr, ok := <-closed:
			if !ok || amqpErr == nil {
				// graceful close
				return
			}
			r.logger.Warn().Str("reason", amqpErr.Reason).Msg("RabbitMQ connection lost")
			if err := r.Reconnect(ctx); err != nil {
				r.logger.Error().Err(err).Msg("giving up on RabbitMQ")
				return
			}
		}
	}
}

// Reconnect attempts to reconnect to RabbitMQ
func (r *RabbitMQ) Reconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("connection is permanently closed")
	}

	for i := 0; i < r.config.MaxRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info().Int("attempt", i+1).Msg("attempting to reconnect to RabbitMQ")

		if err := r.connect(); err != nil {
			r.logger.Warn().Err(err).Msg("reconnection attempt failed")
			time.Sleep(r.config.ReconnectDelay)
			continue
		}

		return nil
	}

	return fmt.Errorf("failed to reconnect after %d attempts", r.config.MaxRetries)
}
