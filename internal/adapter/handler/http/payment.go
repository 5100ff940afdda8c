package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	maxWebhookBody  = 1 << 20
	defaultCountry  = "India"
)

type PaymentHandler struct {
	Handler
	service port.PaymentService
}

func NewPaymentHandler(service port.PaymentService, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createIntentRequest struct {
	Amount   *jsonDecimal `json:"amount" swaggertype:"number"`
	Currency string       `json:"currency"`
	Receipt  string       `json:"receipt"`
}

type intentResponse struct {
	ProviderOrderID string `json:"id"`
	AmountMinor     int64  `json:"amount"`
	Currency        string `json:"currency"`
	Receipt         string `json:"receipt"`
	Status          string `json:"status"`
}

// CreatePaymentIntent godoc
//
//	@Summary	Open a provider order for the checkout widget
//	@Tags		payment
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		createIntentRequest	true	"Amount in major units"
//	@Success	200		{object}	intentResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	502		{object}	errorResponse
//	@Router		/api/payment/create-order [post]
func (ph *PaymentHandler) CreatePaymentIntent(ctx *gin.Context) {
	req := createIntentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}
	if req.Amount == nil {
		ph.handleValidationError(ctx, errors.New("amount is required"))
		return
	}

	intent, err := ph.service.CreatePaymentIntent(ctx, decimal.Decimal(*req.Amount), req.Currency, req.Receipt)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, intentResponse{
		ProviderOrderID: intent.ProviderOrderID,
		AmountMinor:     intent.AmountMinor,
		Currency:        intent.Currency,
		Receipt:         intent.Receipt,
		Status:          intent.Status,
	})
}

type draftItemRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type shippingAddressRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"required"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	Pincode string `json:"pincode" binding:"required"`
	Country string `json:"country"`
}

type draftRequest struct {
	Items           []draftItemRequest     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress shippingAddressRequest `json:"shipping_address"`
}

func (r *draftRequest) draft(userID uint64) domain.OrderDraft {
	items := make([]domain.DraftItem, 0, len(r.Items))
	for _, i := range r.Items {
		items = append(items, domain.DraftItem{ProductID: i.ProductID, Quantity: i.Quantity})
	}
	a := r.ShippingAddress
	if a.Country == "" {
		a.Country = defaultCountry
	}
	return domain.OrderDraft{
		UserID: userID,
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			Name:    a.Name,
			Email:   a.Email,
			Phone:   a.Phone,
			Street:  a.Street,
			City:    a.City,
			State:   a.State,
			Pincode: a.Pincode,
			Country: a.Country,
		},
	}
}

type verifyRequest struct {
	ProviderOrderID   string `json:"razorpay_order_id" binding:"required"`
	ProviderPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature         string `json:"razorpay_signature" binding:"required"`
	draftRequest
}

type orderCreatedResponse struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	PaymentStatus string `json:"payment_status"`
}

// VerifyPayment godoc
//
//	@Summary	Verify the checkout callback and record the paid order
//	@Tags		payment
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		verifyRequest	true	"Checkout callback and order draft"
//	@Success	200		{object}	orderCreatedResponse
//	@Failure	400,403	{object}	errorResponse
//	@Failure	502		{object}	errorResponse
//	@Router		/api/payment/verify [post]
func (ph *PaymentHandler) VerifyPayment(ctx *gin.Context) {
	req := verifyRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	userID := getAuthPayload(ctx).UserID
	order, err := ph.service.VerifyPayment(ctx, &domain.PaymentVerification{
		UserID:            userID,
		ProviderOrderID:   req.ProviderOrderID,
		ProviderPaymentID: req.ProviderPaymentID,
		Signature:         req.Signature,
		Draft:             req.draft(userID),
	})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, orderCreatedResponse{
		OrderID:       order.ID.String(),
		OrderNumber:   order.Number,
		PaymentStatus: string(order.PaymentStatus),
	})
}

// CreateCODOrder godoc
//
//	@Summary	Place a cash on delivery order
//	@Tags		payment
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		draftRequest	true	"Order draft"
//	@Success	201		{object}	orderCreatedResponse
//	@Failure	400,422	{object}	errorResponse
//	@Router		/api/payment/cod [post]
func (ph *PaymentHandler) CreateCODOrder(ctx *gin.Context) {
	req := draftRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	draft := req.draft(getAuthPayload(ctx).UserID)
	order, err := ph.service.CreateCODOrder(ctx, &draft)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, orderCreatedResponse{
		OrderID:       order.ID.String(),
		OrderNumber:   order.Number,
		PaymentStatus: string(order.PaymentStatus),
	}, http.StatusCreated)
}

type webhookResponse struct {
	Received bool `json:"received"`
}

// Webhook godoc
//
//	@Summary	Provider payment notifications
//	@Tags		payment
//	@Accept		json
//	@Produce	json
//	@Param		X-Razorpay-Signature	header		string	true	"HMAC-SHA256 of the body"
//	@Success	200						{object}	webhookResponse
//	@Failure	400						{object}	errorResponse
//	@Failure	500						{object}	errorResponse
//	@Router		/api/payment/webhook [post]
func (ph *PaymentHandler) Webhook(ctx *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxWebhookBody))
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	err = ph.service.AcceptWebhook(ctx, body, ctx.GetHeader(signatureHeader))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, webhookResponse{Received: true})
}
