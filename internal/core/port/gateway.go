package port

import (
	"context"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock
type PaymentGateway interface {
	// CreateIntent converts amount to minor units and opens a provider order.
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*domain.PaymentIntent, error)
	FetchIntent(ctx context.Context, providerOrderID string) (*domain.PaymentIntent, error)
}
