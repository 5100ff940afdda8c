package port

import (
	"context"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/govalues/decimal"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, login string, password string) (string, error)

	ListProducts(ctx context.Context, search string, page, limit uint64) ([]*domain.Product, error)
	GetProduct(ctx context.Context, productID uint64) (*domain.Product, error)

	GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	GetOrderByNumber(ctx context.Context, userID uint64, number string) (*domain.Order, error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*domain.PaymentIntent, error)
	VerifyPayment(ctx context.Context, v *domain.PaymentVerification) (*domain.Order, error)
	CreateCODOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
	AcceptWebhook(ctx context.Context, body []byte, signature string) error
}
