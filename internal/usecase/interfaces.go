package usecase

import (
	"context"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/infra/queue"
)

// PageCache drops the cached rendering of a published landing page.
type PageCache interface {
	Invalidate(ctx context.Context, slug string) error
}

type QueueProducerInterface interface {
	PublishLeadNotification(ctx context.Context, payload queue.LeadNotificationPayload) error
}

// QRGenerator encodes content as a PNG data URL.
type QRGenerator interface {
	DataURL(content string) (string, error)
}

// LeadNotifier hands a stored lead over for consultant notification.
type LeadNotifier interface {
	Notify(ctx context.Context, lead *entity.Lead) error
}
