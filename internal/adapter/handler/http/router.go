package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MikeRez0/ypcheckout/docs"
	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	// Swagger
	docs.SwaggerInfo.Host = conf.HostString
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := NewHandler(logger)

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", userHandler.RegisterUser)
			user.POST("/login", userHandler.LoginUser)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(h, tokenService))
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:number", orderHandler.GetOrder)
		}

		payment := api.Group("/payment")
		{
			// signed by the provider, not by a user token
			payment.POST("/webhook", paymentHandler.Webhook)

			payment.Use(authCheck(h, tokenService))
			payment.POST("/create-order", paymentHandler.CreatePaymentIntent)
			payment.POST("/verify", paymentHandler.VerifyPayment)
			payment.POST("/cod", paymentHandler.CreateCODOrder)
		}
	}

	return &Router{router}, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Debug("request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// Serve starts the HTTP server and shuts it down once ctx is done.
func (r *Router) Serve(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
