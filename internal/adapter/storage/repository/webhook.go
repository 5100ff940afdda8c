package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SaveWebhookEvent stores an event in the inbox. It reports false when an
// event of the same type for the same payment was already stored.
func (r *Repository) SaveWebhookEvent(ctx context.Context, event *domain.WebhookEvent) (bool, error) {
	statement := r.db.QueryBuilder.
		Insert("webhook_events").
		Columns("event_type", "provider_payment_id", "provider_order_id", "amount", "payload", "status").
		Values(event.Type, event.ProviderPaymentID, event.ProviderOrderID, event.AmountMinor,
			json.RawMessage(event.Payload), domain.WebhookEventQueued).
		Suffix("ON CONFLICT (provider_payment_id, event_type) DO NOTHING RETURNING id, received_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.ReceivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	event.Status = domain.WebhookEventQueued
	return true, nil
}

func (r *Repository) ListQueuedWebhookEvents(ctx context.Context) ([]*domain.WebhookEvent, error) {
	statement := r.db.QueryBuilder.
		Select("id", "event_type", "provider_payment_id", "provider_order_id", "amount",
			"payload", "status", "attempts", "received_at", "processed_at").
		From("webhook_events").
		Where(sq.Eq{"status": domain.WebhookEventQueued}).
		OrderBy("received_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.WebhookEvent, 0)
	for rows.Next() {
		e := domain.WebhookEvent{}
		err := rows.Scan(&e.ID, &e.Type, &e.ProviderPaymentID, &e.ProviderOrderID, &e.AmountMinor,
			&e.Payload, &e.Status, &e.Attempts, &e.ReceivedAt, &e.ProcessedAt)
		if err != nil {
			return nil, err
		}
		list = append(list, &e)
	}

	return list, rows.Err()
}

func (r *Repository) UpdateWebhookEvent(ctx context.Context, event *domain.WebhookEvent) error {
	update := r.db.QueryBuilder.
		Update("webhook_events").
		Set("status", event.Status).
		Set("attempts", event.Attempts).
		Where(sq.Eq{"id": event.ID})
	if event.Status != domain.WebhookEventQueued {
		now := time.Now()
		event.ProcessedAt = &now
		update = update.Set("processed_at", now)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
