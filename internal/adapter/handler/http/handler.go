package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type errorStatus struct {
	err    error
	status int
}

// errorStatuses is matched in order with errors.Is, so wrapped service
// errors resolve to their sentinel.
var errorStatuses = []errorStatus{
	{domain.ErrInternal, http.StatusInternalServerError},
	{domain.ErrDataNotFound, http.StatusNotFound},
	{domain.ErrConflictingData, http.StatusConflict},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationType, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},

	{domain.ErrNoUpdatedData, http.StatusBadRequest},
	{domain.ErrBadRequest, http.StatusBadRequest},

	{domain.ErrGatewayUnavailable, http.StatusBadGateway},
	{domain.ErrSignatureInvalid, http.StatusBadRequest},
	{domain.ErrAmountMismatch, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidCurrency, http.StatusBadRequest},
	{domain.ErrCODIneligible, http.StatusBadRequest},
	{domain.ErrEmptyOrder, http.StatusBadRequest},
	{domain.ErrProductUnavailable, http.StatusUnprocessableEntity},
	{domain.ErrPaymentFailed, http.StatusPaymentRequired},
	{domain.ErrOrderBadNumber, http.StatusUnprocessableEntity},
}

func lookupStatus(err error) (int, error, bool) {
	for _, s := range errorStatuses {
		if errors.Is(err, s.err) {
			return s.status, s.err, true
		}
	}
	return http.StatusInternalServerError, domain.ErrInternal, false
}

// jsonDecimal renders money as a JSON number with two decimals and accepts
// both numbers and numeric strings.
type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(j).Pad(2).String()), nil
}

func (j *jsonDecimal) UnmarshalJSON(data []byte) error {
	d, err := decimal.Parse(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}
	*j = jsonDecimal(d)
	return nil
}

type errorResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	h.logger.Debug("invalid request", zap.String("path", ctx.FullPath()), zap.Error(err))
	ctx.JSON(http.StatusBadRequest, errorResponse{Message: domain.ErrBadRequest.Error()})
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, public, ok := lookupStatus(err)
	if !ok {
		h.logger.Error("aborting request", zap.Error(err))
	}
	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(statusCode, errorResponse{Message: public.Error()})
}

// handleError replies with the status of the sentinel err wraps. Only the
// sentinel message reaches the client.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, public, ok := lookupStatus(err)
	if !ok || statusCode >= http.StatusInternalServerError {
		h.logger.Error("error processing request", zap.String("path", ctx.FullPath()), zap.Error(err))
	}
	ctx.JSON(statusCode, errorResponse{Message: public.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
