package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusCOD     PaymentStatus = "cod"
)

type PaymentMethod string

const (
	PaymentMethodGateway        PaymentMethod = "gateway"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

type FailureReason string

const (
	FailureReasonNone           FailureReason = ""
	FailureReasonAmountMismatch FailureReason = "amount_mismatch"
	FailureReasonProviderFailed FailureReason = "provider_failed"
)

// PaymentState is the reconciliation view of a gateway order.
type PaymentState string

const (
	PaymentStateCreated         PaymentState = "Created"
	PaymentStateVerifiedPending PaymentState = "VerifiedPending"
	PaymentStatePaid            PaymentState = "Paid"
	PaymentStateFailed          PaymentState = "Failed"
	PaymentStateCancelled       PaymentState = "Cancelled"
)

type OrderItem struct {
	ProductID uint64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// OrderDraft is what a buyer asks for. Prices are never taken from it.
type OrderDraft struct {
	UserID          uint64
	Items           []DraftItem
	ShippingAddress ShippingAddress
}

type DraftItem struct {
	ProductID uint64
	Quantity  int
}

type Order struct {
	ID     uuid.UUID
	Number string
	UserID uint64
	Items  []OrderItem

	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	TaxAmount   decimal.Decimal
	CODCharges  decimal.Decimal
	GrandTotal  decimal.Decimal
	Currency    string

	ProviderOrderID   string
	ProviderPaymentID string
	Receipt           string

	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	FailureReason FailureReason

	ShippingAddress ShippingAddress

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalConsistent checks that the grand total equals the sum of its parts.
func (o *Order) TotalConsistent() bool {
	sum := decimal.Zero
	for _, part := range []decimal.Decimal{o.Subtotal, o.ShippingFee, o.TaxAmount, o.CODCharges} {
		if part.Sign() < 0 {
			return false
		}
		var err error
		sum, err = sum.Add(part)
		if err != nil {
			return false
		}
	}
	return sum.Cmp(o.GrandTotal) == 0
}

func (o *Order) PaymentState() PaymentState {
	switch o.PaymentStatus {
	case PaymentStatusPaid:
		return PaymentStatePaid
	case PaymentStatusFailed:
		if o.FailureReason == FailureReasonProviderFailed {
			return PaymentStateCancelled
		}
		return PaymentStateFailed
	}
	if o.ProviderPaymentID != "" {
		return PaymentStateVerifiedPending
	}
	return PaymentStateCreated
}
