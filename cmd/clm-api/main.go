// cmd/clm-api/main.go
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

	v1 "github.com/rpsg-tech/clm-sub005/internal/api/rest/v1"
	"github.com/rpsg-tech/clm-sub005/internal/app"
	"github.com/rpsg-tech/clm-sub005/internal/domain/auth"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/domain/store"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/authn"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/cache"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/export"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/persistence"
	"github.com/rpsg-tech/clm-sub005/internal/infrastructure/sanitizer"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db         *gorm.DB
	issuer     auth.TokenIssuer
	services   v1.Services
	closeCache func() error
}

func (d *appDependencies) close(log logger.Logger) {
	if err := d.closeCache(); err != nil {
		log.Warn("Failed to close redis client", "error", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Failed to close database", "error", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	uow, err := persistence.NewUnitOfWork(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit of work: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	contractCache, closeCache := cache.Connect(ctx, cfg.Redis, log)

	hasher, err := authn.NewBcryptHasher(bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	issuer, err := authn.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	services, err := initializeApplicationServices(uow, contractCache, hasher, issuer, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:         db,
		issuer:     issuer,
		services:   services,
		closeCache: closeCache,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.New()
	r.Use(gin.Recovery(), v1.RequestLogger(log))

	// Configure CORS. Credentials require explicit origins.
	if len(cfg.CORS.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", v1.CSRFHeader, v1.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Setup API routes
	v1.SetupRoutes(r, deps.services, v1.RouteOptions{
		Issuer: deps.issuer,
		Cookies: v1.CookieSettings{
			Secure: cfg.Auth.SecureCookies,
			Domain: cfg.Auth.CookieDomain,
		},
		LoginLimiter: v1.NewLoginRateLimiter(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst),
		Health: func(ctx context.Context) error {
			sqlDB, err := deps.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	uow store.UnitOfWork,
	contractCache contracts.ContractCache,
	hasher users.PasswordHasher,
	issuer auth.TokenIssuer,
	log logger.Logger,
) (v1.Services, error) {
	var services v1.Services
	var err error

	if services.Auth, err = app.NewAuthService(uow, hasher, issuer, log); err != nil {
		return services, fmt.Errorf("failed to create auth service: %w", err)
	}
	if services.Users, err = app.NewUserService(uow, hasher, log); err != nil {
		return services, fmt.Errorf("failed to create user service: %w", err)
	}

	ugc := sanitizer.NewUGCSanitizer()
	if services.Templates, err = app.NewTemplateService(uow, ugc, log); err != nil {
		return services, fmt.Errorf("failed to create template service: %w", err)
	}
	if services.Contracts, err = app.NewContractService(uow, contractCache, ugc, log); err != nil {
		return services, fmt.Errorf("failed to create contract service: %w", err)
	}
	if services.Versions, err = app.NewVersionService(uow, contractCache, log); err != nil {
		return services, fmt.Errorf("failed to create version service: %w", err)
	}
	if services.Approvals, err = app.NewApprovalService(uow, contractCache, log); err != nil {
		return services, fmt.Errorf("failed to create approval service: %w", err)
	}
	if services.Audit, err = app.NewAuditService(uow, export.NewExcelAuditExporter(), log); err != nil {
		return services, fmt.Errorf("failed to create audit service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return services, nil
}
