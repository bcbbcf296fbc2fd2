package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/http"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/otp"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/service"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/sms"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/store"
	"github.com/Mmdshorang/HospitalSystem-sub000/internal/auth/store/drivers/sqlite"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/jwtx"
	"github.com/Mmdshorang/HospitalSystem-sub000/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	rdb    *redis.Client
	signer *jwtx.Signer

	authService *service.AuthService
	userService *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.SecretKey == DefaultSecretKey {
		app.logger.Warn("using the default signing secret; set AUTH_SECRET_KEY before deploying")
	}
	if cfg.OtpBypassLogin {
		app.logger.Warn("otp bypass login is enabled; empty-phone requests mint admin tokens")
	}

	app.signer = &jwtx.Signer{
		Secret:   []byte(cfg.SecretKey),
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		TTL:      cfg.TokenTTL,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initCache()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.rdb.Close(); err != nil {
		app.logger.Error("error closing redis client", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the user directory and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache connects the OTP cache. Connectivity faults surface per request
// and through /readyz, not at startup.
func (app *Application) initCache() {
	app.rdb = redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
	})
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	var sender sms.Sender
	if app.cfg.SMSGatewayURL != "" {
		sender = &sms.GatewaySender{
			URL:    app.cfg.SMSGatewayURL,
			APIKey: app.cfg.SMSAPIKey,
		}
	} else {
		app.logger.Warn("no SMS gateway configured; OTP codes will be logged instead of sent")
		sender = &sms.LogSender{Logger: app.logger}
	}

	app.authService = &service.AuthService{
		Store:         app.db,
		Codes:         otp.NewStore(app.rdb),
		Sender:        sender,
		Tokens:        app.signer,
		OtpTTL:        app.cfg.OtpTTL,
		CodeDigits:    app.cfg.OtpCodeLength,
		BypassEnabled: app.cfg.OtpBypassLogin,
	}
	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		func(ctx context.Context) error { return app.rdb.Ping(ctx).Err() },
		app.logger,
	)
	router.AuthService = app.authService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
