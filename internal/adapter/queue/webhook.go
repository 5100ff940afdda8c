package queue

import (
	"context"
	"sync"
	"time"

	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"go.uber.org/zap"
)

// WebhookQueue hands stored webhook events to a pool of workers. Events are
// already durable when scheduled, so a full queue only delays them until the
// next recall.
type WebhookQueue struct {
	logger         *zap.Logger
	events         chan *domain.WebhookEvent
	retryDelay     time.Duration
	recallInterval time.Duration
	wg             sync.WaitGroup
}

func NewWebhookQueue(cfg *config.Webhook, log *zap.Logger) *WebhookQueue {
	return &WebhookQueue{
		logger:         log,
		events:         make(chan *domain.WebhookEvent, cfg.QueueSize),
		retryDelay:     cfg.RetryDelay,
		recallInterval: cfg.RecallInterval,
	}
}

func (q *WebhookQueue) ScheduleWebhookEvent(event *domain.WebhookEvent) {
	select {
	case q.events <- event:
		q.logger.Debug("webhook event scheduled", zap.Int64("event", event.ID))
	default:
		q.logger.Warn("webhook queue is full, event left for recall", zap.Int64("event", event.ID))
	}
}

// Run starts the workers. They stop when ctx is cancelled; Wait blocks
// until they have.
func (q *WebhookQueue) Run(ctx context.Context, processor port.WebhookEventProcessor, workers int) {
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for {
				select {
				case event := <-q.events:
					q.process(ctx, processor, event)
				case <-ctx.Done():
					q.logger.Debug("Finished webhook worker")
					return
				}
			}
		}()
	}
}

func (q *WebhookQueue) Wait() {
	q.wg.Wait()
}

func (q *WebhookQueue) process(ctx context.Context, processor port.WebhookEventProcessor, event *domain.WebhookEvent) {
	q.logger.Debug("Start processing webhook event",
		zap.Int64("event", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("provider_payment_id", event.ProviderPaymentID))

	needRetry, err := processor.ProcessWebhookEvent(ctx, event)
	if err != nil {
		q.logger.Error("webhook event processing error",
			zap.Int64("event", event.ID), zap.Bool("retry", needRetry), zap.Error(err))
	}
	if needRetry {
		go q.retry(ctx, event)
	}
}

func (q *WebhookQueue) retry(ctx context.Context, event *domain.WebhookEvent) {
	t := time.NewTimer(q.retryDelay)
	defer t.Stop()

	select {
	case <-t.C:
		q.ScheduleWebhookEvent(event)
	case <-ctx.Done():
	}
}

// RecallWebhookEvents schedules every event still queued in storage.
func RecallWebhookEvents(ctx context.Context, repo port.Repository, queue port.WebhookQueue) error {
	events, err := repo.ListQueuedWebhookEvents(ctx)
	if err != nil {
		return err
	}
	for _, event := range events {
		queue.ScheduleWebhookEvent(event)
	}
	return nil
}

// RecallPeriodically repeats RecallWebhookEvents until ctx is cancelled.
func (q *WebhookQueue) RecallPeriodically(ctx context.Context, repo port.Repository) {
	if q.recallInterval <= 0 {
		return
	}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		ticker := time.NewTicker(q.recallInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := RecallWebhookEvents(ctx, repo, q); err != nil {
					q.logger.Error("webhook recall error", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
