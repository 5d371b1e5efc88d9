package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/infrastructure/payment"
	"storefront/internal/logger"
	"storefront/internal/repo"
	"storefront/internal/service"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying schema migrations")
	return cmd
}

func runServe(parent context.Context, skipMigrations bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	price, err := cfg.Price()
	if err != nil {
		return err
	}

	if !skipMigrations {
		version, err := database.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		log.Info("schema ready", zap.Uint("version", version))
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	dbService := database.New(db)
	defer dbService.Close()

	gateway, err := payment.New(cfg)
	if err != nil {
		return err
	}
	if c, ok := gateway.(payment.Configurable); ok && !c.Configured() {
		log.Warn("payment gateway not configured, checkout will fail", zap.String("provider", cfg.PaymentProvider))
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}
	verifier := payment.NewEnotGateway(cfg.Enot)
	if !verifier.Configured() {
		log.Warn("webhook signing secret missing, notifications will be rejected")
	}

	promoRepo := repo.NewPromoRepo(db)
	purchaseRepo := repo.NewPurchaseRepo(db)

	promos := service.NewPromoService(db, promoRepo)
	orders := service.NewOrderService(service.OrderConfig{
		Price:         price,
		OrderIDPrefix: cfg.OrderIDPrefix,
	}, promos, gateway, log)
	webhooks := service.NewWebhookService(verifier, purchaseRepo, log)
	downloads := service.NewDownloadService(purchaseRepo, cfg.DownloadURL())

	mode := gin.ReleaseMode
	if cfg.LogMode == logger.ModeDebug {
		mode = gin.DebugMode
	}
	h := handler.New(promos, orders, webhooks, downloads, dbService, log)
	router := handler.NewRouter(h, log, handler.RouterOptions{CORSMaxAge: cfg.CORSMaxAge, Mode: mode})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.GatewayTimeout + 15*time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("provider", cfg.PaymentProvider))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
