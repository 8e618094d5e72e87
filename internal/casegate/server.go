package casegate

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	"github.com/kart-io/version"

	"github.com/caseworks/casegate/internal/casegate/policy"
	"github.com/caseworks/casegate/internal/casegate/router"
	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/pkg/middleware"
	"github.com/caseworks/casegate/pkg/session"
)

// Run starts the CaseGate server and blocks until shutdown.
func Run(opts *Options) error {
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	logger.Infow("Starting casegate",
		"version", version.Get().GitVersion,
		"http_addr", opts.HTTP.Addr,
		"db_driver", opts.DB.Driver,
	)

	// The matrix must be total before the process accepts a single request.
	// A missing entry here is fatal, never a default.
	matrix, err := policy.Load()
	if err != nil {
		return fmt.Errorf("load permission matrix: %w", err)
	}
	logger.Infow("Permission matrix validated")

	db, err := opts.DB.NewDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	factory := store.NewFactory(db)
	if err := factory.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	defer func() { _ = factory.Close() }()
	logger.Infow("Database migration completed")

	var contexts session.ContextStore
	if opts.Redis.Enabled {
		client := opts.Redis.NewClient()
		if err := client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		contexts = session.NewRedisStore(client, "", session.DefaultTTL)
		logger.Infow("Session context store initialized", "backend", "redis")
	} else {
		contexts = session.NewMemoryStore(session.DefaultTTL)
		logger.Infow("Session context store initialized", "backend", "memory")
	}

	gin.SetMode(opts.HTTP.Mode)
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging("/healthz"),
	)
	router.Register(engine, factory, contexts, matrix, opts.JWT.Key)

	srv := &http.Server{
		Addr:         opts.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  opts.HTTP.ReadTimeout,
		WriteTimeout: opts.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	logger.Infow("Casegate is ready", "addr", opts.HTTP.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		logger.Infow("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
