package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workgate/internal/config"
	"workgate/internal/domain/ports/adapter"
	"workgate/internal/infra/api"
	pg "workgate/internal/infra/db/postgres"
	"workgate/internal/infra/logging"
	"workgate/internal/infra/metrics"
	pay "workgate/internal/infra/payment"
	red "workgate/internal/infra/redis"
	"workgate/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled; payments are NOT charged")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	txRepo := pg.NewTransactionRepo(pool)
	tm := pg.NewTxManager(pool)
	sessionRepo := red.NewSessionRepo(redisClient)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Runtime.Dev {
		gateway = pay.NewNoopPaymentGateway()
	} else {
		gateway, err = pay.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret, "")
		if err != nil {
			logger.Fatal().Err(err).Msg("razorpay gateway")
		}
	}
	logger.Info().Str("gateway", gateway.Name()).Msg("payment gateway ready")

	// ---- Use cases ----
	orderUC := usecase.NewOrderUseCase(gateway, logger)
	checkoutUC := usecase.NewCheckoutUseCase(userRepo, txRepo, gateway, tm, logger)
	sessionUC := usecase.NewSessionUseCase(sessionRepo, cfg.Session.Secret, cfg.Session.TTL, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, txRepo)

	// ---- HTTP server ----
	srv := api.NewServer(orderUC, checkoutUC, sessionUC, statsUC, cfg, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
