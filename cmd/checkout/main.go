package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MikeRez0/ypcheckout/internal/adapter/auth"
	"github.com/MikeRez0/ypcheckout/internal/adapter/client/gateway"
	"github.com/MikeRez0/ypcheckout/internal/adapter/config"
	"github.com/MikeRez0/ypcheckout/internal/adapter/handler/http"
	"github.com/MikeRez0/ypcheckout/internal/adapter/logger"
	"github.com/MikeRez0/ypcheckout/internal/adapter/queue"
	"github.com/MikeRez0/ypcheckout/internal/adapter/storage"
	"github.com/MikeRez0/ypcheckout/internal/adapter/storage/repository"
	"github.com/MikeRez0/ypcheckout/internal/core/service"
	"go.uber.org/zap"
)

//	@title						Checkout API
//	@version					1.0
//	@description				Payment verification and order reconciliation.
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		fmt.Printf("error creating log: %s", err)
		return
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	defer db.Close()

	err = db.RunMigrations(log.Named("migrate"))
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	gatewayClient, err := gateway.NewGatewayClient(conf.Gateway, log.Named("Gateway"))
	if err != nil {
		log.Error("gateway client creating error", zap.Error(err))
		return
	}
	webhookQueue := queue.NewWebhookQueue(conf.Webhook, log.Named("Webhook queue"))

	svc, err := service.NewService(repo, tokenService, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}
	paymentSvc, err := service.NewPaymentService(repo, gatewayClient, webhookQueue, service.PaymentConfig{
		KeySecret:     conf.Gateway.KeySecret,
		WebhookSecret: conf.Gateway.WebhookSecret,
		Currency:      conf.Gateway.Currency,
		MaxAttempts:   conf.Webhook.MaxAttempts,
		Pricing: service.Pricing{
			TaxRate:               conf.Pricing.TaxRate,
			ShippingFee:           conf.Pricing.ShippingFee,
			FreeShippingThreshold: conf.Pricing.FreeShippingThreshold,
			CODCharges:            conf.Pricing.CODCharges,
			CODCeiling:            conf.Pricing.CODCeiling,
		},
	}, log.Named("Payment"))
	if err != nil {
		log.Error("payment service creating error", zap.Error(err))
		return
	}

	webhookQueue.Run(ctx, paymentSvc, conf.Webhook.Workers)
	if err := queue.RecallWebhookEvents(ctx, repo, webhookQueue); err != nil {
		log.Error("webhook recall error", zap.Error(err))
	}
	webhookQueue.RecallPeriodically(ctx, repo)

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	productHandler, err := http.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		log.Error("product handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(paymentSvc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		userHandler, productHandler, orderHandler, paymentHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	log.Info("Starting server", zap.String("address", conf.HTTP.HostString))
	err = r.Serve(ctx, conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
	}

	stop()
	webhookQueue.Wait()
	log.Info("Server stopped")
}
