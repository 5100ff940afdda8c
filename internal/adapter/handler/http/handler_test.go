package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/MikeRez0/ypcheckout/internal/core/port/mock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "valid-token"

type handlerMocks func(svc *mock.MockService, pay *mock.MockPaymentService)

func newTestRouter(t *testing.T, ctrl *gomock.Controller, prepare handlerMocks) *Router {
	t.Helper()

	svc := mock.NewMockService(ctrl)
	pay := mock.NewMockPaymentService(ctrl)
	ts := mock.NewMockTokenService(ctrl)
	ts.EXPECT().VerifyToken(testToken).Return(&port.TokenPayload{UserID: 7}, nil).AnyTimes()
	ts.EXPECT().VerifyToken(gomock.Not(testToken)).Return(nil, domain.ErrInvalidToken).AnyTimes()
	if prepare != nil {
		prepare(svc, pay)
	}

	logger := zap.NewNop()
	uh, err := NewUserHandler(svc, logger)
	require.NoError(t, err)
	ph, err := NewProductHandler(svc, logger)
	require.NoError(t, err)
	oh, err := NewOrderHandler(svc, logger)
	require.NoError(t, err)
	payh, err := NewPaymentHandler(pay, logger)
	require.NoError(t, err)

	r, err := NewRouter(&config.HTTP{HostString: "localhost:8080"}, ts, uh, ph, oh, payh, logger)
	require.NoError(t, err)
	return r
}

func doRequest(r *Router, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var authorized = map[string]string{authHeaderKey: authType + " " + testToken}

func paidOrder() *domain.Order {
	id := uuid.MustParse("6f1c1a52-8f43-4b0e-9a43-3f4f0b7c2d11")
	return &domain.Order{
		ID:            id,
		Number:        "1000000000009",
		UserID:        7,
		GrandTotal:    decimal.MustParse("1500"),
		Currency:      "INR",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentMethod: domain.PaymentMethodGateway,
	}
}

func TestPaymentHandler_Webhook(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	body := `{"event":"payment.captured"}`

	tests := []struct {
		name      string
		mock      handlerMocks
		expStatus int
		expBody   string
	}{
		{
			name: "Accepted",
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().AcceptWebhook(gomock.Any(), []byte(body), "sig").Return(nil)
			},
			expStatus: http.StatusOK,
			expBody:   `{"received":true}`,
		},
		{
			name: "Bad signature",
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().AcceptWebhook(gomock.Any(), []byte(body), "sig").Return(domain.ErrSignatureInvalid)
			},
			expStatus: http.StatusBadRequest,
			expBody:   `{"message":"payment signature is invalid"}`,
		},
		{
			name: "Inbox unavailable asks provider to retry",
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().AcceptWebhook(gomock.Any(), []byte(body), "sig").Return(errors.New("connection refused"))
			},
			expStatus: http.StatusInternalServerError,
			expBody:   `{"message":"internal error"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newTestRouter(t, mockCtrl, test.mock)

			w := doRequest(r, http.MethodPost, "/api/payment/webhook", body, map[string]string{signatureHeader: "sig"})

			assert.Equal(t, test.expStatus, w.Code)
			assert.JSONEq(t, test.expBody, w.Body.String())
		})
	}
}

func TestPaymentHandler_CreatePaymentIntent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name      string
		body      string
		headers   map[string]string
		mock      handlerMocks
		expStatus int
	}{
		{
			name:    "Created",
			body:    `{"amount":1500,"currency":"INR"}`,
			headers: authorized,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().CreatePaymentIntent(gomock.Any(), decimal.MustParse("1500"), "INR", "").
					Return(&domain.PaymentIntent{ProviderOrderID: "order_1", AmountMinor: 150000,
						Currency: "INR", Receipt: "receipt_1", Status: "created"}, nil)
			},
			expStatus: http.StatusOK,
		},
		{
			name:      "No token",
			body:      `{"amount":1500}`,
			expStatus: http.StatusUnauthorized,
		},
		{
			name:      "Bad token",
			body:      `{"amount":1500}`,
			headers:   map[string]string{authHeaderKey: authType + " forged"},
			expStatus: http.StatusUnauthorized,
		},
		{
			name:      "Missing amount",
			body:      `{"currency":"INR"}`,
			headers:   authorized,
			expStatus: http.StatusBadRequest,
		},
		{
			name:    "Amount out of bounds",
			body:    `{"amount":"0.50"}`,
			headers: authorized,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), "", "").
					Return(nil, fmt.Errorf("amount 50: %w", domain.ErrInvalidAmount))
			},
			expStatus: http.StatusBadRequest,
		},
		{
			name:    "Gateway down",
			body:    `{"amount":1500}`,
			headers: authorized,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), "", "").
					Return(nil, fmt.Errorf("%w: timeout", domain.ErrGatewayUnavailable))
			},
			expStatus: http.StatusBadGateway,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newTestRouter(t, mockCtrl, test.mock)

			w := doRequest(r, http.MethodPost, "/api/payment/create-order", test.body, test.headers)
			assert.Equal(t, test.expStatus, w.Code)

			if test.expStatus == http.StatusOK {
				assert.JSONEq(t,
					`{"id":"order_1","amount":150000,"currency":"INR","receipt":"receipt_1","status":"created"}`,
					w.Body.String())
			}
		})
	}
}

const verifyBody = `{
	"razorpay_order_id": "order_1",
	"razorpay_payment_id": "pay_1",
	"razorpay_signature": "abc",
	"items": [{"product_id": 1, "quantity": 2}],
	"shipping_address": {"name": "A", "phone": "1", "street": "S", "city": "C", "pincode": "560001"}
}`

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name      string
		body      string
		mock      handlerMocks
		expStatus int
	}{
		{
			name: "Paid",
			body: verifyBody,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ any, v *domain.PaymentVerification) (*domain.Order, error) {
						assert.Equal(t, uint64(7), v.UserID)
						assert.Equal(t, uint64(7), v.Draft.UserID)
						assert.Equal(t, "order_1", v.ProviderOrderID)
						assert.Equal(t, "pay_1", v.ProviderPaymentID)
						assert.Equal(t, "abc", v.Signature)
						assert.Equal(t, []domain.DraftItem{{ProductID: 1, Quantity: 2}}, v.Draft.Items)
						assert.Equal(t, defaultCountry, v.Draft.ShippingAddress.Country)
						return paidOrder(), nil
					})
			},
			expStatus: http.StatusOK,
		},
		{
			name: "Forged signature",
			body: verifyBody,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).Return(nil, domain.ErrSignatureInvalid)
			},
			expStatus: http.StatusBadRequest,
		},
		{
			name: "Amount mismatch",
			body: verifyBody,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).Return(nil, domain.ErrAmountMismatch)
			},
			expStatus: http.StatusBadRequest,
		},
		{
			name: "Gateway down",
			body: verifyBody,
			mock: func(svc *mock.MockService, pay *mock.MockPaymentService) {
				pay.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: reset", domain.ErrGatewayUnavailable))
			},
			expStatus: http.StatusBadGateway,
		},
		{
			name:      "Empty items",
			body:      `{"razorpay_order_id":"o","razorpay_payment_id":"p","razorpay_signature":"s","items":[]}`,
			expStatus: http.StatusBadRequest,
		},
		{
			name:      "Malformed JSON",
			body:      `{"razorpay_order_id":`,
			expStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newTestRouter(t, mockCtrl, test.mock)

			w := doRequest(r, http.MethodPost, "/api/payment/verify", test.body, authorized)
			assert.Equal(t, test.expStatus, w.Code)

			if test.expStatus == http.StatusOK {
				assert.JSONEq(t, `{"order_id":"6f1c1a52-8f43-4b0e-9a43-3f4f0b7c2d11",`+
					`"order_number":"1000000000009","payment_status":"paid"}`, w.Body.String())
			}
		})
	}
}

func TestPaymentHandler_CreateCODOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	body := `{"items":[{"product_id":1,"quantity":1}],` +
		`"shipping_address":{"name":"A","phone":"1","street":"S","city":"C","pincode":"560001","country":"India"}}`

	t.Run("Created", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			o := paidOrder()
			o.PaymentStatus = domain.PaymentStatusCOD
			o.PaymentMethod = domain.PaymentMethodCashOnDelivery
			pay.EXPECT().CreateCODOrder(gomock.Any(), gomock.Any()).Return(o, nil)
		})
		w := doRequest(r, http.MethodPost, "/api/payment/cod", body, authorized)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"payment_status":"cod"`)
	})

	t.Run("Above ceiling", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			pay.EXPECT().CreateCODOrder(gomock.Any(), gomock.Any()).
				Return(nil, fmt.Errorf("grand total 12000: %w", domain.ErrCODIneligible))
		})
		w := doRequest(r, http.MethodPost, "/api/payment/cod", body, authorized)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"order is not eligible for cash on delivery"}`, w.Body.String())
	})

	t.Run("Missing address", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, nil)
		w := doRequest(r, http.MethodPost, "/api/payment/cod", `{"items":[{"product_id":1,"quantity":1}]}`, authorized)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("List", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			svc.EXPECT().GetOrdersByUser(gomock.Any(), uint64(7)).Return([]*domain.Order{paidOrder()}, nil)
		})
		w := doRequest(r, http.MethodGet, "/api/orders", "", authorized)
		require.Equal(t, http.StatusOK, w.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "1000000000009", list[0]["number"])
		assert.Equal(t, "Paid", list[0]["payment_state"])
		assert.Equal(t, 1500.0, list[0]["grand_total"])
	})

	t.Run("Not found", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			svc.EXPECT().GetOrderByNumber(gomock.Any(), uint64(7), "79927398713").Return(nil, domain.ErrDataNotFound)
		})
		w := doRequest(r, http.MethodGet, "/api/orders/79927398713", "", authorized)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Bad number", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			svc.EXPECT().GetOrderByNumber(gomock.Any(), uint64(7), "123").Return(nil, domain.ErrOrderBadNumber)
		})
		w := doRequest(r, http.MethodGet, "/api/orders/123", "", authorized)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestProductHandler(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("List", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			svc.EXPECT().ListProducts(gomock.Any(), "mug", uint64(2), uint64(5)).Return([]*domain.Product{
				{ID: 1, Name: "Mug", Price: decimal.MustParse("10"), Stock: 3, Available: true},
			}, nil)
		})
		w := doRequest(r, http.MethodGet, "/api/products?search=mug&page=2&limit=5", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Mug","price":10.00,"stock":3,"available":true}]`, w.Body.String())
		assert.Contains(t, w.Body.String(), `"price":10.00`)
	})

	t.Run("Limit too large", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, nil)
		w := doRequest(r, http.MethodGet, "/api/products?limit=1000", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		r := newTestRouter(t, mockCtrl, func(svc *mock.MockService, pay *mock.MockPaymentService) {
			svc.EXPECT().GetProduct(gomock.Any(), uint64(42)).Return(nil, domain.ErrDataNotFound)
		})
		w := doRequest(r, http.MethodGet, "/api/products/42", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLookupStatus(t *testing.T) {
	tests := []struct {
		err       error
		expStatus int
	}{
		{fmt.Errorf("wrapped: %w", domain.ErrGatewayUnavailable), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", domain.ErrAmountMismatch), http.StatusBadRequest},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrPaymentFailed, http.StatusPaymentRequired},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.err.Error(), func(t *testing.T) {
			status, _, _ := lookupStatus(test.err)
			assert.Equal(t, test.expStatus, status)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expToken string
		expError error
	}{
		{name: "Good", header: "Bearer abc", expToken: "abc"},
		{name: "Extra spaces", header: "  Bearer   abc ", expToken: "abc"},
		{name: "Empty", header: "", expError: domain.ErrEmptyAuthorizationHeader},
		{name: "No token", header: "Bearer", expError: domain.ErrInvalidAuthorizationHeader},
		{name: "Too many parts", header: "Bearer abc def", expError: domain.ErrInvalidAuthorizationHeader},
		{name: "Wrong scheme", header: "Basic abc", expError: domain.ErrInvalidAuthorizationType},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := bearerToken(test.header)
			assert.Equal(t, test.expError, err)
			assert.Equal(t, test.expToken, token)
		})
	}
}

func TestAuthCheck_Rejects(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	r := newTestRouter(t, mockCtrl, nil)

	w := doRequest(r, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/orders", "", map[string]string{authHeaderKey: "Bearer stolen"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"`+domain.ErrInvalidToken.Error()+`"}`, w.Body.String())
}
