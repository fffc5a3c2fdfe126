package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/api"
	"github.com/biomintech/labstock/internal/checkers"
	"github.com/biomintech/labstock/internal/config"
	"github.com/biomintech/labstock/internal/cover"
	"github.com/biomintech/labstock/internal/db"
	"github.com/biomintech/labstock/internal/inventory"
	"github.com/biomintech/labstock/internal/notify"
	"github.com/biomintech/labstock/internal/persist"
)

func main() {
	fs := flag.NewFlagSet("labstock", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: labstock [flags]

Flags:
  -c, -config <path>      YAML config file (default: labstock.yaml in . or ./configs)
  -d, -db <path>          on-device SQLite store (default: labstock.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Set SUPABASE_URL and SUPABASE_ANON_KEY (or LABSTOCK_REMOTE_URL and
LABSTOCK_REMOTE_KEY) to keep the inventory in a hosted table.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath, ".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if dbPath != "" {
		cfg.Device.Path = dbPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}

	logger, closeLog, err := setupLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("fatal")
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx := context.Background()

	database, err := db.Open(cfg.Device.Path)
	if err != nil {
		return fmt.Errorf("opening on-device store: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring on-device schema: %w", err)
	}
	logger.Info().Str("path", cfg.Device.Path).Msg("on-device store ready")

	device := persist.NewDeviceBackend(database, logger)
	backend := persist.Select(ctx, cfg.Remote.Persist(), device, logger)
	backend, items := persist.Hydrate(ctx, backend, device, logger)
	if c, ok := backend.(interface{ Close() error }); ok {
		defer c.Close()
	}
	logger.Info().Str("mode", string(backend.Mode())).Int("items", len(items)).Msg("inventory loaded")

	// Full-snapshot writes must land in order.
	workers := cfg.Persist.Workers
	if backend.Mode() == persist.ModeDevice {
		workers = 1
	}

	hub := notify.NewHub(logger)
	dispatch := inventory.NewDispatcher(workers, logger, func(_ inventory.Task, err error) {
		hub.PersistFailed(err)
	})
	defer dispatch.Close()

	store := inventory.New(ctx, backend, items, dispatch, inventory.Options{
		Threshold:  cfg.Inventory.Threshold,
		AutoStatus: cfg.Inventory.AutoStatus,
	}, logger)

	router := api.NewRouter(api.Deps{
		Store:    store,
		Checkers: checkers.Load(ctx, database, logger),
		Cover:    cover.Load(ctx, database, cfg.Cover.Default, logger),
		Hub:      hub,
		Log:      logger,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.LoggingMiddleware(logger)(router),
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
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	logger.Info().Str("addr", cfg.Server.Addr).Msg("server started")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	logger.Info().Msg("server stopped, flushing pending writes")
	return nil
}
