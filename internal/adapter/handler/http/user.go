package http

import (
	"net/http"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

type UserRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// RegisterUser godoc
//
//	@Summary	Register a buyer and return a token
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		request	body		UserRequest	true	"Credentials"
//	@Success	200		{object}	tokenResponse
//	@Failure	400,409	{object}	errorResponse
//	@Router		/api/user/register [post]
func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	userReq := UserRequest{}
	err := ctx.ShouldBindBodyWithJSON(&userReq)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	user := &domain.User{
		Login:    userReq.Login,
		Password: userReq.Password,
	}

	_, err = uh.service.RegisterUser(ctx, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	// Token return
	uh.LoginUser(ctx)
}

// LoginUser godoc
//
//	@Summary	Exchange credentials for a token
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		request	body		UserRequest	true	"Credentials"
//	@Success	200		{object}	tokenResponse
//	@Failure	400,401	{object}	errorResponse
//	@Router		/api/user/login [post]
func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	userReq := UserRequest{}
	err := ctx.ShouldBindBodyWithJSON(&userReq)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, userReq.Login, userReq.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	ctx.Header(authHeaderKey, authType+" "+token)
	uh.handleSuccessWithStatus(ctx, tokenResponse{Token: token}, http.StatusOK)
}
