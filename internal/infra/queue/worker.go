package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadMailer sends the consultant notification for one lead.
type LeadMailer interface {
	SendLeadNotification(ctx context.Context, payload LeadNotificationPayload) error
}

// Consumer is the subset of *amqp.Channel used by the worker.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Mailer  LeadMailer
	Logger  *slog.Logger
}

func NewWorker(ch Consumer, mailer LeadMailer, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{Channel: ch, Mailer: mailer, Logger: logger}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // auto-ack desligado, confirmamos manualmente
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info("lead notification worker started", "queue", queueName)
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("lead notification worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de consumo fechado")
			}
			w.Handle(ctx, d)
		}
	}
}

// Handle processes one delivery. Malformed messages and send failures are
// rejected without requeue so they land in the dead letter queue.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadNotificationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error("invalid lead notification message", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.Mailer.SendLeadNotification(ctx, payload); err != nil {
		w.Logger.Error("lead notification failed", "lead_id", payload.LeadID, "to", payload.To, "error", err)
		_ = d.Nack(false, false)
		return
	}

	w.Logger.Info("lead notification sent", "lead_id", payload.LeadID, "to", payload.To)
	_ = d.Ack(false)
}
