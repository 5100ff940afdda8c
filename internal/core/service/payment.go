package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const maxReceiptLength = 40

type PaymentConfig struct {
	KeySecret     string
	WebhookSecret string
	Currency      string
	MaxAttempts   int
	Pricing       Pricing
}

// PaymentService reconciles the checkout callback and provider webhooks
// against the order ledger. Both paths settle an order through the
// repository compare-and-set, so whichever lands first wins.
type PaymentService struct {
	repo          port.Repository
	gateway       port.PaymentGateway
	queue         port.WebhookQueue
	keySecret     string
	webhookSecret string
	currency      string
	maxAttempts   int
	pricing       *Pricing
	logger        *zap.Logger
}

func NewPaymentService(repo port.Repository, gateway port.PaymentGateway, queue port.WebhookQueue,
	conf PaymentConfig, logger *zap.Logger) (*PaymentService, error) {
	if conf.KeySecret == "" || conf.WebhookSecret == "" {
		return nil, errors.New("payment secrets are not configured")
	}
	if conf.Currency == "" {
		return nil, errors.New("payment currency is not configured")
	}
	if conf.MaxAttempts <= 0 {
		conf.MaxAttempts = 1
	}
	pricing := conf.Pricing

	return &PaymentService{
		repo:          repo,
		gateway:       gateway,
		queue:         queue,
		keySecret:     conf.KeySecret,
		webhookSecret: conf.WebhookSecret,
		currency:      conf.Currency,
		maxAttempts:   conf.MaxAttempts,
		pricing:       &pricing,
		logger:        logger,
	}, nil
}

func (s *PaymentService) CreatePaymentIntent(ctx context.Context,
	amount decimal.Decimal, currency, receipt string) (*domain.PaymentIntent, error) {
	if currency == "" {
		currency = s.currency
	}
	if currency != s.currency {
		return nil, fmt.Errorf("%q: %w", currency, domain.ErrInvalidCurrency)
	}
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	}
	if len(receipt) > maxReceiptLength {
		return nil, fmt.Errorf("receipt longer than %d: %w", maxReceiptLength, domain.ErrBadRequest)
	}

	intent, err := s.gateway.CreateIntent(ctx, amount, currency, receipt)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidAmount) {
			s.logger.Error("Create payment intent", zap.Error(err))
		}
		return nil, err
	}
	return intent, nil
}

// VerifyPayment handles the checkout callback. The order is written only
// after the signature is proven, and it becomes paid only when the amount
// the provider holds matches the server total exactly.
func (s *PaymentService) VerifyPayment(ctx context.Context, v *domain.PaymentVerification) (*domain.Order, error) {
	if !utils.VerifyPaymentSignature(v.ProviderOrderID, v.ProviderPaymentID, v.Signature, s.keySecret) {
		s.logger.Warn("Payment signature rejected",
			zap.Uint64("user", v.UserID),
			zap.String("provider_order_id", v.ProviderOrderID),
			zap.String("provider_payment_id", v.ProviderPaymentID))
		return nil, domain.ErrSignatureInvalid
	}

	order, err := s.orderForVerification(ctx, v)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != domain.PaymentStatusPending {
		return settled(order)
	}

	intent, err := s.gateway.FetchIntent(ctx, v.ProviderOrderID)
	if err != nil {
		s.logger.Error("Fetch payment intent", zap.String("provider_order_id", v.ProviderOrderID), zap.Error(err))
		return nil, err
	}

	if err := s.reconcile(order, intent.AmountMinor, intent.Currency); err != nil {
		s.logger.Warn("Payment amount mismatch",
			zap.Uint64("user", v.UserID),
			zap.String("order", order.Number),
			zap.String("provider_order_id", v.ProviderOrderID),
			zap.Error(err))
		if _, ferr := s.repo.TransitionToFailed(ctx, order.ID, domain.FailureReasonAmountMismatch); ferr != nil {
			s.logger.Error("Mark order failed", zap.String("order", order.Number), zap.Error(ferr))
		}
		return nil, domain.ErrAmountMismatch
	}

	paid, err := s.repo.TransitionToPaid(ctx, order.ID, v.ProviderPaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyPaid) {
			return settled(paid)
		}
		s.logger.Error("Mark order paid", zap.String("order", order.Number), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order paid",
		zap.String("order", paid.Number),
		zap.String("provider_payment_id", v.ProviderPaymentID),
		zap.String("via", "callback"))
	return paid, nil
}

// orderForVerification returns the order recorded for the provider order,
// creating it from the draft on the first verification.
func (s *PaymentService) orderForVerification(ctx context.Context, v *domain.PaymentVerification) (*domain.Order, error) {
	order, err := s.repo.FindByProviderOrderID(ctx, v.ProviderOrderID)
	if err == nil {
		return s.ownedBy(order, v.UserID)
	}
	if !errors.Is(err, domain.ErrDataNotFound) {
		return nil, err
	}

	draft := v.Draft
	draft.UserID = v.UserID
	order, err = s.priceDraft(ctx, &draft, domain.PaymentMethodGateway)
	if err != nil {
		return nil, err
	}
	order.PaymentStatus = domain.PaymentStatusPending
	order.ProviderOrderID = v.ProviderOrderID
	order.ProviderPaymentID = v.ProviderPaymentID

	created, err := s.repo.CreateOrder(ctx, order)
	if err == nil {
		s.logger.Info("Order created",
			zap.String("order", created.Number),
			zap.String("provider_order_id", created.ProviderOrderID),
			zap.String("grand_total", created.GrandTotal.String()))
		return created, nil
	}
	if !errors.Is(err, domain.ErrConflictingData) {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	// a concurrent verification for the same provider order got there first
	order, err = s.repo.FindByProviderOrderID(ctx, v.ProviderOrderID)
	if err != nil {
		return nil, err
	}
	return s.ownedBy(order, v.UserID)
}

func (s *PaymentService) ownedBy(order *domain.Order, userID uint64) (*domain.Order, error) {
	if order.UserID != userID {
		s.logger.Warn("Verification for foreign order",
			zap.Uint64("user", userID),
			zap.String("order", order.Number))
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *PaymentService) reconcile(order *domain.Order, amountMinor int64, currency string) error {
	if currency != "" && currency != order.Currency {
		return fmt.Errorf("currency %s, order in %s: %w", currency, order.Currency, domain.ErrAmountMismatch)
	}
	return utils.Reconcile(order.GrandTotal, amountMinor)
}

// settled maps an order that is no longer pending to the caller's result.
func settled(order *domain.Order) (*domain.Order, error) {
	switch order.PaymentStatus {
	case domain.PaymentStatusPaid:
		return order, nil
	case domain.PaymentStatusFailed:
		if order.FailureReason == domain.FailureReasonAmountMismatch {
			return nil, domain.ErrAmountMismatch
		}
		return nil, domain.ErrPaymentFailed
	}
	return nil, domain.ErrConflictingData
}

func (s *PaymentService) CreateCODOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	order, err := s.priceDraft(ctx, draft, domain.PaymentMethodCashOnDelivery)
	if err != nil {
		return nil, err
	}
	if order.GrandTotal.Cmp(s.pricing.CODCeiling) > 0 {
		return nil, fmt.Errorf("grand total %s above %s: %w",
			order.GrandTotal, s.pricing.CODCeiling, domain.ErrCODIneligible)
	}
	order.PaymentStatus = domain.PaymentStatusCOD
	order.Receipt = fmt.Sprintf("cod_%d", order.CreatedAt.UnixMilli())

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create COD order", zap.Error(err))
		return nil, err
	}
	s.logger.Info("COD order created",
		zap.String("order", created.Number),
		zap.String("grand_total", created.GrandTotal.String()))
	return created, nil
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID       string `json:"id"`
				OrderID  string `json:"order_id"`
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
				Status   string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// AcceptWebhook authenticates a webhook body and stores it in the inbox.
// It returns nil only once the event is durable or known to be a
// duplicate; processing happens asynchronously.
func (s *PaymentService) AcceptWebhook(ctx context.Context, body []byte, signature string) error {
	if !utils.VerifyWebhookSignature(body, signature, s.webhookSecret) {
		s.logger.Warn("Webhook signature rejected", zap.Int("size", len(body)))
		return domain.ErrSignatureInvalid
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("webhook body: %w", domain.ErrBadRequest)
	}

	eventType := domain.WebhookEventType(envelope.Event)
	if eventType != domain.WebhookPaymentCaptured && eventType != domain.WebhookPaymentFailed {
		s.logger.Debug("Webhook event ignored", zap.String("event", envelope.Event))
		return nil
	}

	entity := envelope.Payload.Payment.Entity
	if entity.ID == "" {
		return fmt.Errorf("webhook without payment id: %w", domain.ErrBadRequest)
	}

	event := &domain.WebhookEvent{
		Type:              eventType,
		ProviderPaymentID: entity.ID,
		ProviderOrderID:   entity.OrderID,
		AmountMinor:       entity.Amount,
		Payload:           body,
		Status:            domain.WebhookEventQueued,
	}
	created, err := s.repo.SaveWebhookEvent(ctx, event)
	if err != nil {
		s.logger.Error("Save webhook event", zap.Error(err))
		return err
	}
	if !created {
		s.logger.Debug("Duplicate webhook event",
			zap.String("event", envelope.Event),
			zap.String("provider_payment_id", entity.ID))
		return nil
	}

	s.queue.ScheduleWebhookEvent(event)
	return nil
}

// ProcessWebhookEvent applies a stored event to the ledger. Events whose
// order is not recorded yet are retried until the attempt limit.
func (s *PaymentService) ProcessWebhookEvent(ctx context.Context, event *domain.WebhookEvent) (bool, error) {
	event.Attempts++

	order, err := s.orderForEvent(ctx, event)
	if err != nil {
		if event.Attempts < s.maxAttempts {
			s.saveEvent(ctx, event, domain.WebhookEventQueued)
			return true, err
		}
		s.logger.Warn("Webhook event dropped",
			zap.Int64("event", event.ID),
			zap.String("provider_payment_id", event.ProviderPaymentID),
			zap.Int("attempts", event.Attempts),
			zap.Error(err))
		s.saveEvent(ctx, event, domain.WebhookEventFailed)
		return false, err
	}

	switch event.Type {
	case domain.WebhookPaymentCaptured:
		err = s.applyCaptured(ctx, order, event)
	case domain.WebhookPaymentFailed:
		err = s.applyFailed(ctx, order, event)
	}
	if err != nil {
		retry := event.Attempts < s.maxAttempts
		status := domain.WebhookEventFailed
		if retry {
			status = domain.WebhookEventQueued
		}
		s.saveEvent(ctx, event, status)
		return retry, err
	}

	s.saveEvent(ctx, event, domain.WebhookEventProcessed)
	return false, nil
}

func (s *PaymentService) orderForEvent(ctx context.Context, event *domain.WebhookEvent) (*domain.Order, error) {
	order, err := s.repo.FindByProviderPaymentID(ctx, event.ProviderPaymentID)
	if err == nil || !errors.Is(err, domain.ErrDataNotFound) || event.ProviderOrderID == "" {
		return order, err
	}
	return s.repo.FindByProviderOrderID(ctx, event.ProviderOrderID)
}

func (s *PaymentService) applyCaptured(ctx context.Context, order *domain.Order, event *domain.WebhookEvent) error {
	if order.PaymentStatus != domain.PaymentStatusPending {
		return nil
	}

	if err := utils.Reconcile(order.GrandTotal, event.AmountMinor); err != nil {
		s.logger.Warn("Captured amount mismatch",
			zap.String("order", order.Number),
			zap.String("provider_payment_id", event.ProviderPaymentID),
			zap.Error(err))
		_, err = s.repo.TransitionToFailed(ctx, order.ID, domain.FailureReasonAmountMismatch)
		return err
	}

	paid, err := s.repo.TransitionToPaid(ctx, order.ID, event.ProviderPaymentID)
	if errors.Is(err, domain.ErrAlreadyPaid) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("Order paid",
		zap.String("order", paid.Number),
		zap.String("provider_payment_id", event.ProviderPaymentID),
		zap.String("via", "webhook"))
	return nil
}

func (s *PaymentService) applyFailed(ctx context.Context, order *domain.Order, event *domain.WebhookEvent) error {
	if order.PaymentStatus != domain.PaymentStatusPending {
		return nil
	}
	// a failed earlier attempt must not cancel the attempt being verified
	if order.ProviderPaymentID != "" && order.ProviderPaymentID != event.ProviderPaymentID {
		s.logger.Debug("Failure for superseded payment attempt",
			zap.String("order", order.Number),
			zap.String("provider_payment_id", event.ProviderPaymentID))
		return nil
	}

	_, err := s.repo.TransitionToFailed(ctx, order.ID, domain.FailureReasonProviderFailed)
	return err
}

func (s *PaymentService) saveEvent(ctx context.Context, event *domain.WebhookEvent, status domain.WebhookEventStatus) {
	event.Status = status
	if err := s.repo.UpdateWebhookEvent(ctx, event); err != nil {
		s.logger.Error("Update webhook event", zap.Int64("event", event.ID), zap.Error(err))
	}
}
