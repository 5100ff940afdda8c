package port

import (
	"context"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// Catalog
	ListProducts(ctx context.Context, search string, limit, offset uint64) ([]*domain.Product, error)
	ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error)
	ReadProducts(ctx context.Context, productIDs []uint64) (map[uint64]*domain.Product, error)

	// Order ledger
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ReadOrderByNumber(ctx context.Context, number string) (*domain.Order, error)
	FindByProviderOrderID(ctx context.Context, providerOrderID string) (*domain.Order, error)
	FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	// TransitionToPaid moves a pending gateway order to paid. When the order
	// is already settled it returns the current order and domain.ErrAlreadyPaid.
	TransitionToPaid(ctx context.Context, orderID uuid.UUID, providerPaymentID string) (*domain.Order, error)
	// TransitionToFailed moves a pending gateway order to failed. A settled
	// order is returned unchanged.
	TransitionToFailed(ctx context.Context, orderID uuid.UUID, reason domain.FailureReason) (*domain.Order, error)

	// Webhook inbox
	SaveWebhookEvent(ctx context.Context, event *domain.WebhookEvent) (bool, error)
	ListQueuedWebhookEvents(ctx context.Context) ([]*domain.WebhookEvent, error)
	UpdateWebhookEvent(ctx context.Context, event *domain.WebhookEvent) error
}
