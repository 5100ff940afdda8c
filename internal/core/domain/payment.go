package domain

import "time"

// PaymentIntent is the provider-side order. Amounts are in minor units as
// the provider reports them.
type PaymentIntent struct {
	ProviderOrderID string
	AmountMinor     int64
	Currency        string
	Receipt         string
	Status          string
}

type PaymentVerification struct {
	UserID            uint64
	ProviderOrderID   string
	ProviderPaymentID string
	Signature         string
	Draft             OrderDraft
}

type WebhookEventType string

const (
	WebhookPaymentCaptured WebhookEventType = "payment.captured"
	WebhookPaymentFailed   WebhookEventType = "payment.failed"
)

type WebhookEventStatus string

const (
	WebhookEventQueued    WebhookEventStatus = "queued"
	WebhookEventProcessed WebhookEventStatus = "processed"
	WebhookEventFailed    WebhookEventStatus = "failed"
)

type WebhookEvent struct {
	ID                int64
	Type              WebhookEventType
	ProviderPaymentID string
	ProviderOrderID   string
	AmountMinor       int64
	Payload           []byte
	Status            WebhookEventStatus
	Attempts          int
	ReceivedAt        time.Time
	ProcessedAt       *time.Time
}
