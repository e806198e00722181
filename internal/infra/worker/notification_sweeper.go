package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/xavierca1/qrleads/internal/entity"
)

// LeadLister finds leads whose notification was never queued.
type LeadLister interface {
	ListUnnotified(ctx context.Context, olderThan time.Time, limit int) ([]entity.Lead, error)
}

type LeadNotifier interface {
	Notify(ctx context.Context, lead *entity.Lead) error
}

// NotificationSweeper re-publishes lead notifications that were lost, for
// example while RabbitMQ was down when the lead arrived.
type NotificationSweeper struct {
	leads    LeadLister
	notifier LeadNotifier
	// Grace gives the request path time to publish before the sweeper
	// takes over.
	Grace        time.Duration
	TickInterval time.Duration
	BatchSize    int
	Now          func() time.Time
}

func NewNotificationSweeper(leads LeadLister, notifier LeadNotifier, interval, grace time.Duration) *NotificationSweeper {
	return &NotificationSweeper{
		leads:        leads,
		notifier:     notifier,
		Grace:        grace,
		TickInterval: interval,
		BatchSize:    50,
		Now:          time.Now,
	}
}

func (w *NotificationSweeper) Start(ctx context.Context) {
	slog.Info("notification sweeper started", "interval", w.TickInterval, "grace", w.Grace)

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("notification sweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and returns how many leads were queued.
func (w *NotificationSweeper) Sweep(ctx context.Context) int {
	leads, err := w.leads.ListUnnotified(ctx, w.Now().Add(-w.Grace), w.BatchSize)
	if err != nil {
		slog.Error("listing unnotified leads", "error", err)
		return 0
	}

	queued := 0
	for i := range leads {
		if err := w.notifier.Notify(ctx, &leads[i]); err != nil {
			// fila fora do ar: para e tenta no próximo tick
			slog.Warn("lead notification still pending", "lead_id", leads[i].ID, "error", err)
			break
		}
		queued++
	}
	if queued > 0 {
		slog.Info("pending lead notifications queued", "count", queued)
	}
	return queued
}
