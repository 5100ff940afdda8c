package http

import (
	"strings"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/gin-gonic/gin"
)

const (
	authHeaderKey  = "Authorization"
	authType       = "Bearer"
	userPayloadKey = "user_payload"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrEmptyAuthorizationHeader
	}
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || token == "" || strings.ContainsAny(token, " \t") {
		return "", domain.ErrInvalidAuthorizationHeader
	}
	if scheme != authType {
		return "", domain.ErrInvalidAuthorizationType
	}
	return token, nil
}

// authCheck rejects requests without a valid user token and stores the
// verified payload for getAuthPayload.
func authCheck(h *Handler, tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := bearerToken(ctx.GetHeader(authHeaderKey))
		if err != nil {
			h.handleAbort(ctx, err)
			return
		}

		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			h.handleAbort(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(userPayloadKey, payload)
		ctx.Next()
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(userPayloadKey).(*port.TokenPayload)
}
