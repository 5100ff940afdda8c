package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Pricing holds the server-side rules used to total an order. Amounts are
// in major units.
type Pricing struct {
	TaxRate               decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	CODCharges            decimal.Decimal
	CODCeiling            decimal.Decimal
}

// priceDraft builds an order from catalog prices. Nothing the buyer sent
// besides product ids and quantities is trusted.
func (s *PaymentService) priceDraft(ctx context.Context,
	draft *domain.OrderDraft, method domain.PaymentMethod) (*domain.Order, error) {
	if len(draft.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	ids := make([]uint64, 0, len(draft.Items))
	wanted := make(map[uint64]int, len(draft.Items))
	for _, item := range draft.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity %d for product %d: %w",
				item.Quantity, item.ProductID, domain.ErrBadRequest)
		}
		if _, ok := wanted[item.ProductID]; !ok {
			ids = append(ids, item.ProductID)
		}
		wanted[item.ProductID] += item.Quantity
	}

	products, err := s.repo.ReadProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	items := make([]domain.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		product, ok := products[item.ProductID]
		if !ok || !product.Purchasable(wanted[item.ProductID]) {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, domain.ErrProductUnavailable)
		}

		line, err := product.Price.Mul(decimal.MustNew(int64(item.Quantity), 0))
		if err != nil {
			return nil, fmt.Errorf("math error: %w", err)
		}
		subtotal, err = subtotal.Add(line)
		if err != nil {
			return nil, fmt.Errorf("math error: %w", err)
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          draft.UserID,
		Items:           items,
		Currency:        s.currency,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   method,
		ShippingAddress: draft.ShippingAddress,
	}
	order.Number = utils.OrderNumber(order.ID)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	if err := s.pricing.total(order, subtotal, method == domain.PaymentMethodCashOnDelivery); err != nil {
		return nil, err
	}
	return order, nil
}

func (p *Pricing) total(order *domain.Order, subtotal decimal.Decimal, cod bool) error {
	var err error
	order.Subtotal, err = utils.RoundMoney(subtotal)
	if err != nil {
		return err
	}

	order.ShippingFee = p.ShippingFee
	if p.FreeShippingThreshold.Sign() > 0 && order.Subtotal.Cmp(p.FreeShippingThreshold) >= 0 {
		order.ShippingFee = decimal.Zero
	}

	tax, err := order.Subtotal.Mul(p.TaxRate)
	if err != nil {
		return fmt.Errorf("math error: %w", err)
	}
	order.TaxAmount, err = utils.RoundMoney(tax)
	if err != nil {
		return err
	}

	order.CODCharges = decimal.Zero
	if cod {
		order.CODCharges = p.CODCharges
	}

	total := order.Subtotal
	for _, part := range []decimal.Decimal{order.ShippingFee, order.TaxAmount, order.CODCharges} {
		total, err = total.Add(part)
		if err != nil {
			return fmt.Errorf("math error: %w", err)
		}
	}
	order.GrandTotal = total
	return nil
}
