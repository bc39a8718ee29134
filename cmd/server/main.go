package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/safari-trip-api/internal/auth"
	"github.com/gdg-garage/safari-trip-api/internal/booking"
	"github.com/gdg-garage/safari-trip-api/internal/catalog"
	"github.com/gdg-garage/safari-trip-api/internal/config"
	"github.com/gdg-garage/safari-trip-api/internal/database"
	"github.com/gdg-garage/safari-trip-api/internal/handlers"
	"github.com/gdg-garage/safari-trip-api/internal/logging"
	"github.com/gdg-garage/safari-trip-api/internal/notifier"
	"github.com/gdg-garage/safari-trip-api/internal/trips"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until SIGINT or SIGTERM. Errors are
// returned so deferred cleanup runs before the process exits.
func run() error {
	// Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open %s catalog store: %w", cfg.StoreDriver, err)
	}
	logger.Info("catalog store ready", "driver", cfg.StoreDriver)

	// Notifiers are optional; a missing one only costs announcements.
	var notifiers notifier.Multi
	if cfg.DiscordBotToken != "" {
		session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			logger.Warn("Discord notifier not initialized", "error", err)
		} else {
			notifiers = append(notifiers, notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID))
		}
	}
	if cfg.NATSURL != "" {
		nc, err := notifier.ConnectNATS(cfg.NATSURL)
		if err != nil {
			logger.Warn("NATS notifier not initialized", "error", err)
		} else {
			defer drainNATS(nc)
			notifiers = append(notifiers, notifier.NewNATSNotifier(nc, cfg.NATSSubjectPrefix))
		}
	}

	cat := catalog.New(store, logger)
	tripService := trips.NewService(cat, notifiers, logger)
	engine := booking.NewEngine(cat, notifiers, logger)

	authHandler := auth.NewAuthHandler(cfg, logger)
	tripHandler := handlers.NewTripHandler(tripService, authHandler, logger)
	bookingHandler := handlers.NewBookingHandler(engine, authHandler, logger)

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, logger, cfg.AllowedOrigins(), authHandler, tripHandler, bookingHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, logger, shutdownTimeout)
}

const shutdownTimeout = 15 * time.Second

// serve runs srv until ctx is done and then shuts it down, waiting at most
// timeout for open requests.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config) (catalog.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := database.Connect(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return catalog.NewGormStore(db), nil
	default:
		return catalog.NewFileStore(afero.NewOsFs(), cfg.CatalogFile), nil
	}
}

func drainNATS(nc *nats.Conn) {
	if err := nc.Drain(); err != nil {
		slog.Warn("NATS drain failed", "error", err)
	}
}
