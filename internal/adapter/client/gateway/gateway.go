package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/utils"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// GatewayClient talks to the hosted-checkout provider's orders API.
// Calls are bounded by the configured timeout and never retried here.
type GatewayClient struct {
	logger    *zap.Logger
	http      *http.Client
	baseURL   string
	keyID     string
	keySecret string
	minAmount int64
	maxAmount int64
}

func NewGatewayClient(cfg *config.Gateway, log *zap.Logger) (*GatewayClient, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid gateway url %q: %w", cfg.BaseURL, err)
	}
	return &GatewayClient{
		logger:    log,
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		minAmount: cfg.MinAmount,
		maxAmount: cfg.MaxAmount,
	}, nil
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (r *orderResponse) intent() *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ProviderOrderID: r.ID,
		AmountMinor:     r.Amount,
		Currency:        r.Currency,
		Receipt:         r.Receipt,
		Status:          r.Status,
	}
}

func (c *GatewayClient) CreateIntent(ctx context.Context,
	amount decimal.Decimal, currency, receipt string) (*domain.PaymentIntent, error) {
	minor, err := utils.ToMinorUnits(amount)
	if err != nil {
		return nil, err
	}
	if minor < c.minAmount || minor > c.maxAmount {
		return nil, fmt.Errorf("amount %d not in [%d, %d]: %w",
			minor, c.minAmount, c.maxAmount, domain.ErrInvalidAmount)
	}

	body, err := json.Marshal(createOrderRequest{Amount: minor, Currency: currency, Receipt: receipt})
	if err != nil {
		return nil, fmt.Errorf("error encoding order request: %w", err)
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orders", body, &resp); err != nil {
		return nil, err
	}
	c.logger.Debug("Provider order created",
		zap.String("provider_order_id", resp.ID),
		zap.Int64("amount", resp.Amount),
		zap.String("receipt", resp.Receipt))

	return resp.intent(), nil
}

func (c *GatewayClient) FetchIntent(ctx context.Context, providerOrderID string) (*domain.PaymentIntent, error) {
	if providerOrderID == "" {
		return nil, domain.ErrBadRequest
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/v1/orders/"+url.PathEscape(providerOrderID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.intent(), nil
}

// do performs one request. Transport failures, non-2xx answers and
// undecodable bodies all become ErrGatewayUnavailable.
func (c *GatewayClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error on %s %s: %w", method, path, err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", domain.ErrGatewayUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		c.logger.Warn("unexpected status from gateway",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", e.Error.Code),
			zap.String("description", e.Error.Description))

		return fmt.Errorf("%w: bad response %d for %s %s",
			domain.ErrGatewayUnavailable, resp.StatusCode, method, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: error on response decode: %w", domain.ErrGatewayUnavailable, err)
	}
	return nil
}
