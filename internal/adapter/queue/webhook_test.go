package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/adapter/queue"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWebhookQueue_ProcessAndRetry(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	processor := mock.NewMockWebhookEventProcessor(mockCtrl)
	event := &domain.WebhookEvent{ID: 7, Type: domain.WebhookPaymentCaptured, ProviderPaymentID: "pay_1"}

	done := make(chan struct{})
	gomock.InOrder(
		processor.EXPECT().ProcessWebhookEvent(gomock.Any(), event).
			Return(true, domain.ErrDataNotFound),
		processor.EXPECT().ProcessWebhookEvent(gomock.Any(), event).
			DoAndReturn(func(ctx context.Context, e *domain.WebhookEvent) (bool, error) {
				close(done)
				return false, nil
			}),
	)

	q := queue.NewWebhookQueue(&config.Webhook{QueueSize: 4, RetryDelay: 10 * time.Millisecond}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	q.Run(ctx, processor, 2)

	q.ScheduleWebhookEvent(event)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not retried")
	}
	cancel()
	q.Wait()
}

func TestWebhookQueue_FullQueueDoesNotBlock(t *testing.T) {
	q := queue.NewWebhookQueue(&config.Webhook{QueueSize: 1}, zap.NewNop())

	finished := make(chan struct{})
	go func() {
		q.ScheduleWebhookEvent(&domain.WebhookEvent{ID: 1})
		q.ScheduleWebhookEvent(&domain.WebhookEvent{ID: 2})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("schedule blocked on a full queue")
	}
}

func TestRecallWebhookEvents(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	q := mock.NewMockWebhookQueue(mockCtrl)

	events := []*domain.WebhookEvent{{ID: 1}, {ID: 2}}
	repo.EXPECT().ListQueuedWebhookEvents(gomock.Any()).Return(events, nil)
	q.EXPECT().ScheduleWebhookEvent(events[0])
	q.EXPECT().ScheduleWebhookEvent(events[1])

	assert.NoError(t, queue.RecallWebhookEvents(context.Background(), repo, q))

	failing := errors.New("db down")
	repo.EXPECT().ListQueuedWebhookEvents(gomock.Any()).Return(nil, failing)
	assert.ErrorIs(t, queue.RecallWebhookEvents(context.Background(), repo, q), failing)
}
