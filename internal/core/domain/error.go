package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest         = errors.New("error parsing request")
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")

	// * Authority errors.
	ErrTokenDuration              = errors.New("invalid token duration format")
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")
	ErrSignatureInvalid           = errors.New("payment signature is invalid")

	// * Business errors.
	ErrInvalidAmount      = errors.New("amount is out of accepted bounds")
	ErrInvalidCurrency    = errors.New("currency is not supported")
	ErrAmountMismatch     = errors.New("paid amount does not match order total")
	ErrAlreadyPaid        = errors.New("order payment is already settled")
	ErrPaymentFailed      = errors.New("payment failed at provider")
	ErrCODIneligible      = errors.New("order is not eligible for cash on delivery")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrProductUnavailable = errors.New("product is not available")
	ErrOrderBadNumber     = errors.New("order number is not valid")
	ErrOrderTotalMismatch = errors.New("order grand total does not match its components")
)
