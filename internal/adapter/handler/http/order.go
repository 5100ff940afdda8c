package http

import (
	"time"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderItemResp struct {
	ProductID uint64      `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice jsonDecimal `json:"unit_price" swaggertype:"number"`
}

type OrderResp struct {
	ID                string                 `json:"id"`
	Number            string                 `json:"number"`
	Items             []OrderItemResp        `json:"items"`
	Subtotal          jsonDecimal            `json:"subtotal" swaggertype:"number"`
	ShippingFee       jsonDecimal            `json:"shipping_fee" swaggertype:"number"`
	TaxAmount         jsonDecimal            `json:"tax_amount" swaggertype:"number"`
	CODCharges        jsonDecimal            `json:"cod_charges" swaggertype:"number"`
	GrandTotal        jsonDecimal            `json:"grand_total" swaggertype:"number"`
	Currency          string                 `json:"currency"`
	Status            string                 `json:"status"`
	PaymentStatus     string                 `json:"payment_status"`
	PaymentMethod     string                 `json:"payment_method"`
	PaymentState      string                 `json:"payment_state,omitempty"`
	ProviderOrderID   string                 `json:"provider_order_id,omitempty"`
	ProviderPaymentID string                 `json:"provider_payment_id,omitempty"`
	ShippingAddress   domain.ShippingAddress `json:"shipping_address"`
	CreatedAt         time.Time              `json:"created_at"`
}

func newOrderResp(o *domain.Order) OrderResp {
	r := OrderResp{
		ID:                o.ID.String(),
		Number:            o.Number,
		Items:             make([]OrderItemResp, 0, len(o.Items)),
		Subtotal:          jsonDecimal(o.Subtotal),
		ShippingFee:       jsonDecimal(o.ShippingFee),
		TaxAmount:         jsonDecimal(o.TaxAmount),
		CODCharges:        jsonDecimal(o.CODCharges),
		GrandTotal:        jsonDecimal(o.GrandTotal),
		Currency:          o.Currency,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		PaymentMethod:     string(o.PaymentMethod),
		ProviderOrderID:   o.ProviderOrderID,
		ProviderPaymentID: o.ProviderPaymentID,
		ShippingAddress:   o.ShippingAddress,
		CreatedAt:         o.CreatedAt,
	}
	if o.PaymentMethod == domain.PaymentMethodGateway {
		r.PaymentState = string(o.PaymentState())
	}
	for _, i := range o.Items {
		r.Items = append(r.Items, OrderItemResp{
			ProductID: i.ProductID,
			Name:      i.Name,
			Quantity:  i.Quantity,
			UnitPrice: jsonDecimal(i.UnitPrice),
		})
	}
	return r
}

// ListOrdersByUser godoc
//
//	@Summary	List the caller's orders, newest first
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		OrderResp
//	@Failure	401	{object}	errorResponse
//	@Router		/api/orders [get]
func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.GetOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

// GetOrder godoc
//
//	@Summary	Get one of the caller's orders by number
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		number	path		string	true	"Order number"
//	@Success	200		{object}	OrderResp
//	@Failure	404,422	{object}	errorResponse
//	@Router		/api/orders/{number} [get]
func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrderByNumber(ctx, userID, ctx.Param("number"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResp(order))
}
