package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var orderColumns = []string{
	"id", "number", "user_id",
	"subtotal", "shipping_fee", "tax_amount", "cod_charges", "grand_total", "currency",
	"provider_order_id", "provider_payment_id", "receipt",
	"status", "payment_status", "payment_method", "failure_reason",
	"shipping_address", "created_at", "updated_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o := domain.Order{}
	var providerOrderID, providerPaymentID *string
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID,
		&o.Subtotal, &o.ShippingFee, &o.TaxAmount, &o.CODCharges, &o.GrandTotal, &o.Currency,
		&providerOrderID, &providerPaymentID, &o.Receipt,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.FailureReason,
		&o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ProviderOrderID = fromNullString(providerOrderID)
	o.ProviderPaymentID = fromNullString(providerPaymentID)
	return &o, nil
}

// CreateOrder persists the order and its items atomically.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if !order.TotalConsistent() {
		return nil, domain.ErrOrderTotalMismatch
	}

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Insert("orders").
			Columns(orderColumns...).
			Values(
				order.ID, order.Number, order.UserID,
				order.Subtotal, order.ShippingFee, order.TaxAmount, order.CODCharges, order.GrandTotal, order.Currency,
				nullString(order.ProviderOrderID), nullString(order.ProviderPaymentID), order.Receipt,
				order.Status, order.PaymentStatus, order.PaymentMethod, order.FailureReason,
				order.ShippingAddress, order.CreatedAt, order.UpdatedAt,
			)

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		if len(order.Items) == 0 {
			return nil
		}
		itemsSt := r.db.QueryBuilder.
			Insert("order_items").
			Columns("order_id", "position", "product_id", "name", "quantity", "unit_price")
		for i, item := range order.Items {
			itemsSt = itemsSt.Values(order.ID, i, item.ProductID, item.Name, item.Quantity, item.UnitPrice)
		}

		sql, args, err = itemsSt.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}

	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return r.readOrderWhere(ctx, sq.Eq{"id": orderID})
}

func (r *Repository) ReadOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	return r.readOrderWhere(ctx, sq.Eq{"number": number})
}

func (r *Repository) FindByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.Order, error) {
	return r.readOrderWhere(ctx, sq.Eq{"provider_order_id": providerOrderID})
}

func (r *Repository) FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*domain.Order, error) {
	return r.readOrderWhere(ctx, sq.Eq{"provider_payment_id": providerPaymentID})
}

func (r *Repository) readOrderWhere(ctx context.Context, where sq.Eq) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(where)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, list...); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) loadItems(ctx context.Context, orders ...*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	statement := r.db.QueryBuilder.
		Select("order_id", "product_id", "name", "quantity", "unit_price").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		item := domain.OrderItem{}
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// TransitionToPaid is a compare-and-set on payment_status: only a pending
// gateway order becomes paid, whichever caller gets there first.
func (r *Repository) TransitionToPaid(ctx context.Context,
	orderID uuid.UUID, providerPaymentID string) (*domain.Order, error) {
	if providerPaymentID == "" {
		return nil, fmt.Errorf("provider payment id is required: %w", domain.ErrBadRequest)
	}

	statement := r.db.QueryBuilder.
		Update("orders").
		Set("payment_status", domain.PaymentStatusPaid).
		Set("provider_payment_id", providerPaymentID).
		Set("updated_at", time.Now()).
		Where(sq.Eq{
			"id":             orderID,
			"payment_method": domain.PaymentMethodGateway,
			"payment_status": domain.PaymentStatusPending,
		})

	return r.compareAndSet(ctx, orderID, statement, domain.ErrAlreadyPaid)
}

// TransitionToFailed marks a pending gateway order failed. Settled orders,
// paid ones in particular, are returned untouched.
func (r *Repository) TransitionToFailed(ctx context.Context,
	orderID uuid.UUID, reason domain.FailureReason) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Update("orders").
		Set("payment_status", domain.PaymentStatusFailed).
		Set("failure_reason", reason).
		Set("updated_at", time.Now()).
		Where(sq.Eq{
			"id":             orderID,
			"payment_method": domain.PaymentMethodGateway,
			"payment_status": domain.PaymentStatusPending,
		})

	return r.compareAndSet(ctx, orderID, statement, nil)
}

// compareAndSet runs a conditional update. When no row matched, the current
// order is returned together with settledErr, or ErrDataNotFound if the
// order does not exist.
func (r *Repository) compareAndSet(ctx context.Context, orderID uuid.UUID,
	statement sq.UpdateBuilder, settledErr error) (*domain.Order, error) {
	sql, args, err := statement.Suffix("RETURNING " + strings.Join(orderColumns, ", ")).ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err == nil {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err)
	}

	current, err := r.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return current, settledErr
}
