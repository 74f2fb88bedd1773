package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/crypto"
	"bookcatalog/internal/platform/logging"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stdout, cfg.LogFormat, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	repo, db, cleanup, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var authHandler *auth.HTTPHandler
	if cfg.AuthEnabled() {
		authService := auth.NewService(cfg.AuthSecret, auth.Credentials{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
		}, cfg.TokenTTL, logger)
		authHandler = auth.NewHTTPHandler(authService)
	}

	handler := newRouter(ctx, routerDeps{
		cfg:    cfg,
		logger: logger,
		books:  book.NewHTTPHandler(book.NewService(repo, logger)),
		auth:   authHandler,
		db:     db,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", cfg.Addr,
			"env", cfg.Env,
			"store", cfg.Store,
			"id_policy", cfg.IDPolicy.String(),
			"auth", cfg.AuthEnabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-serverErr
}

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	cfg    config.Config
	logger *slog.Logger
	books  *book.HTTPHandler
	auth   *auth.HTTPHandler
	db     pinger
}

func newRouter(ctx context.Context, d routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.db != nil {
			pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.db.Ping(pingCtx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	d.books.Register(router, httpx.RequireRole(d.cfg.AuthSecret, crypto.RoleAdmin))
	if d.auth != nil {
		d.auth.Register(router)
	}

	return withMiddleware(ctx, router, d)
}

// withMiddleware wraps h in the server middleware stack, outermost first.
func withMiddleware(ctx context.Context, h http.Handler, d routerDeps) http.Handler {
	rateLimiter := httpx.NewRateLimitMiddleware(ctx, d.cfg.RateLimitRPS, d.cfg.RateLimitBurst, d.cfg.TrustProxy)

	return httpx.Chain(h,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware(d.logger),
		httpx.AccessLogMiddleware(d.logger),
		httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.CORSOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
	)
}

// openRepository returns the configured book store. db is nil for the
// memory store.
func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (book.Repository, pinger, func(), error) {
	if cfg.Store != config.StorePostgres {
		logger.Info("using in-memory store", "books", len(book.SeedBooks()))
		return book.NewMemoryRepo(book.SeedBooks(), cfg.IDPolicy), nil, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create db pool: %w", err)
	}
	repo := book.NewPostgresRepo(pool, cfg.DBTimeout, cfg.IDPolicy)
	if err := repo.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("ping database (%s): %w", redactDSN(cfg.DSN), err)
	}
	logger.Info("database connection OK", "dsn", redactDSN(cfg.DSN))

	if err := seedIfEmpty(ctx, repo, logger); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	return repo, repo, pool.Close, nil
}

type catalogSeeder interface {
	List(ctx context.Context) ([]book.Book, error)
	Seed(ctx context.Context, books []book.Book) (int, error)
}

// seedIfEmpty loads the sample books into an empty store. A store that
// already holds books is left alone so deletions survive restarts.
func seedIfEmpty(ctx context.Context, s catalogSeeder, logger *slog.Logger) error {
	existing, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing books: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("book store already populated", "books", len(existing))
		return nil
	}

	inserted, err := s.Seed(ctx, book.SeedBooks())
	if err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	logger.Info("seeded empty book store", "inserted", inserted)
	return nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
