// cmd/clm-gateway/main.go
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

	"github.com/rpsg-tech/clm-sub005/internal/gateway"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/authn"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/gateway.yaml"
	}

	cfg, err := config.InitializeGatewayConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	proxy, err := gateway.NewProxy(cfg.Gateway.BackendURL, cfg.Gateway.Timeout, log)
	if err != nil {
		return fmt.Errorf("failed to create proxy: %w", err)
	}
	// Only Parse is used here, so the ttl is irrelevant.
	issuer, err := authn.NewJWTIssuer(cfg.JWTSecret, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gateway.NewRouter(proxy, issuer, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Starting gateway", "port", cfg.Port, "backend", cfg.Gateway.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("gateway failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("gateway forced to shutdown: %w", err)
	}

	log.Info("Gateway stopped gracefully")
	return nil
}
