package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/erazemk/rewear/internal/api"
	"github.com/erazemk/rewear/internal/catalog"
	"github.com/erazemk/rewear/internal/db"
	"github.com/erazemk/rewear/internal/exchange"
	"github.com/erazemk/rewear/internal/model"
	"github.com/erazemk/rewear/internal/session"
	"github.com/erazemk/rewear/internal/store"
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("rewear", flag.ContinueOnError)

	defaultDB := envOr("REWEAR_DB", "rewear.sqlite3")
	var dbPath string
	fs.StringVar(&dbPath, "db", defaultDB, "")
	fs.StringVar(&dbPath, "d", defaultDB, "")

	defaultAddr := envOr("REWEAR_ADDR", ":8080")
	var addr string
	fs.StringVar(&addr, "addr", defaultAddr, "")
	fs.StringVar(&addr, "a", defaultAddr, "")

	defaultLog := envOr("REWEAR_LOG", "")
	var logPath string
	fs.StringVar(&logPath, "log", defaultLog, "")
	fs.StringVar(&logPath, "l", defaultLog, "")

	var seed bool
	fs.BoolVar(&seed, "seed", true, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: rewear [flags]

Flags:
  -d, -db <path>          SQLite database path (env REWEAR_DB, default: rewear.sqlite3)
  -a, -addr <host:port>   listen address (env REWEAR_ADDR, default: :8080)
  -l, -log <path>         log file path (env REWEAR_LOG, default: stdout/stderr only)
  -seed                   start with the demo identities and listings (default: true)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	ctx := context.Background()

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	var (
		identities []model.Identity
		listings   []model.Listing
	)
	if seed {
		identities = session.SeedIdentities()
		listings = catalog.SeedListings()
	}

	sessions := session.Open(ctx, session.NewKVPersister(database), identities)
	cat := catalog.New(catalog.WithListings(listings))
	svc := exchange.NewService(sessions, cat)

	scheduler, err := startScheduler(database)
	if err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer func() { <-scheduler.Stop().Done() }()

	handler := api.LoggingMiddleware(api.NewRouter(database, jwtSecret, sessions, svc))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr, "listings", len(cat.Listings()))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// startScheduler runs the hourly purge of revoked tokens that have expired
// anyway.
func startScheduler(database *sql.DB) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		n, err := store.PurgeExpiredTokens(context.Background(), database, time.Now())
		if err != nil {
			slog.Error("purging revoked tokens", "error", err)
			return
		}
		if n > 0 {
			slog.Info("purged revoked tokens", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling token purge: %w", err)
	}
	c.Start()
	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
