package port

import (
	"context"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
)

//go:generate mockgen -source=webhook.go -destination=mock/webhook.go -package=mock
type WebhookQueue interface {
	ScheduleWebhookEvent(event *domain.WebhookEvent)
}

type WebhookEventProcessor interface {
	// ProcessWebhookEvent applies a stored event. needRetry reports that the
	// event could not be matched yet and should be tried again later.
	ProcessWebhookEvent(ctx context.Context, event *domain.WebhookEvent) (needRetry bool, err error)
}
