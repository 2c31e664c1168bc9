package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendance-tracker/internal/config"
	"attendance-tracker/internal/db"
	"attendance-tracker/internal/directory"
	"attendance-tracker/internal/importer"
	"attendance-tracker/internal/ledger"
	"attendance-tracker/internal/middleware"
	"attendance-tracker/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("error closing store", slog.Any("error", err))
		} else {
			logger.Info("store connection closed gracefully")
		}
	}()

	dir := directory.New(store, logger, directory.Options{
		Timeout:    cfg.StoreTimeout,
		Validators: validators(cfg),
	})
	led := ledger.New(store, logger, ledger.Options{
		Timeout:     cfg.StoreTimeout,
		StrictDates: cfg.StrictDateFormat,
	})

	gate, err := adminGate(cfg)
	if err != nil {
		logger.Error("failed to configure admin gate", slog.Any("error", err))
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	router.Setup(r, router.Deps{
		Directory:      dir,
		Ledger:         led,
		Importer:       importer.New(dir, logger),
		Gate:           gate,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr), slog.String("driver", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutting down server", slog.Any("error", err))
		}
	case err := <-serverErrors:
		logger.Error("server error", slog.Any("error", err))
	}
}

func openStore(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (directory.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.RunMigrations {
			if err := db.Migrate(cfg.DatabaseURL); err != nil {
				return nil, err
			}
			logger.Info("migrations applied")
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return directory.NewPostgresStore(pool), nil
	case config.DriverMongo:
		client, err := db.NewMongoClient(ctx, cfg.MongoURI, cfg.StoreTimeout)
		if err != nil {
			return nil, err
		}
		store, err := directory.NewMongoStore(ctx, client, cfg.MongoDatabase)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return directory.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func validators(cfg config.AppConfig) []directory.Validator {
	vs := []directory.Validator{directory.RequireProfileFields()}
	if cfg.MailDomain != "" {
		vs = append(vs, directory.MailDomain(cfg.MailDomain))
	}
	if cfg.ValidateMobile {
		vs = append(vs, directory.MobileDigits(10))
	}
	if len(cfg.AllowedTeams) > 0 {
		vs = append(vs, directory.TeamSet(cfg.AllowedTeams...))
	}
	return vs
}

func adminGate(cfg config.AppConfig) (*middleware.AdminGate, error) {
	var authz middleware.Authorizer
	if cfg.AdminSecretHash != "" {
		hashed, err := middleware.NewHashedSecret(cfg.AdminSecretHash)
		if err != nil {
			return nil, err
		}
		authz = hashed
	} else {
		authz = middleware.NewSharedSecret(cfg.AdminSecret)
	}

	key := []byte(cfg.JWTSecret)
	if len(key) == 0 {
		// Tokens then only survive until restart.
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token key: %w", err)
		}
	}
	return middleware.NewAdminGate(authz, middleware.NewTokenIssuer(key, cfg.AdminTokenTTL)), nil
}
