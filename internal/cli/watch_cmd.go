package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
)

// errEventsDisabled is returned by watch when no event source is configured
var errEventsDisabled = errors.New("rabbitmq is disabled; set HOURS_RABBITMQ_ENABLED=true to watch events")

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print hours events as they are published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Events == nil {
				return errEventsDisabled
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return app.Events.Stream(ctx, func(event *messaging.Event) error {
				_, err := fmt.Fprintf(out, "%s  %-28s %s\n",
					event.Timestamp.Format(time.RFC3339), event.Type, string(event.Data))
				return err
			})
		},
	}
}

// RabbitEventSource tails the hours exchange through an exclusive queue
type RabbitEventSource struct {
	rmq    *messaging.RabbitMQ
	logger *logger.Logger
}

// NewRabbitEventSource creates an event source on rmq
func NewRabbitEventSource(rmq *messaging.RabbitMQ, log *logger.Logger) *RabbitEventSource {
	return &RabbitEventSource{rmq: rmq, logger: log}
}

// Stream implements EventSource. It blocks until ctx is done.
func (s *RabbitEventSource) Stream(ctx context.Context, handle func(*messaging.Event) error) error {
	consumer, err := messaging.NewTemporaryConsumer(s.rmq, s.logger)
	if err != nil {
		return err
	}
	if err := consumer.Subscribe(messaging.ExchangeHoursEvents, "hours.#"); err != nil {
		return err
	}

	consumer.RegisterFallback(func(_ context.Context, event *messaging.Event) error {
		return handle(event)
	})

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
