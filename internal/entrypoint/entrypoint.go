package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/mongostore"
	"github.com/mrlokans/bookshelf/internal/seed"
	"github.com/mrlokans/bookshelf/internal/store"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Store is what the process needs from a backend: reads for the router,
// the seeding steps, a liveness ping and a way to release it.
type Store interface {
	http_controllers.Library
	seed.Target
	store.Pinger
	Close(ctx context.Context) error
}

var (
	_ Store = (*database.Database)(nil)
	_ Store = (*mongostore.Store)(nil)
)

// OpenStore opens the backend selected by STORE_DRIVER.
func OpenStore(cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		s, err := mongostore.Open(cfg.Store.MongoURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreDriverSQLite:
		db, err := database.NewDatabase(cfg.Store.DatabasePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// NewHandler wraps the router with CORS handling for the configured origins.
func NewHandler(router http.Handler, cfg *config.Config) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", http_controllers.RequestIDHeader},
		ExposedHeaders: []string{http_controllers.RequestIDHeader},
		MaxAge:         300,
	})(router)
}

func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown")
	}

	// Release the store after in-flight requests have drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logging.Info().Msg("Server exiting")
}

// Run opens the store, seeds it when RESET_DATABASE is set and serves
// the API until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) {
	initLogging(cfg)
	logging.Info().Str("version", version).Str("driver", string(cfg.Store.Driver)).Msg("Starting bookshelf")

	s, err := OpenStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}

	monitor := store.NewMonitor(s, cfg.Store.ProbeInterval, cfg.Store.ProbeTimeout)
	if err := monitor.Start(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("Failed to start store monitor")
	}

	if cfg.Seed.ResetDatabase {
		// A failed seed leaves the data partial; the API keeps serving it.
		if err := seedWhenReady(context.Background(), cfg, monitor, s); err != nil {
			logging.Error().Err(err).Msg("Seeding failed")
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library: s,
		Monitor: monitor,
		Version: version,
	})

	onShutdown := func(ctx context.Context) {
		monitor.Stop()
		if err := s.Close(ctx); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}

	Serve(NewHandler(router, cfg), cfg, onShutdown)
}

// RunSeed runs the seeding routine once against the configured store.
func RunSeed(ctx context.Context, cfg *config.Config) error {
	initLogging(cfg)

	s, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	monitor := store.NewMonitor(s, cfg.Store.ProbeInterval, cfg.Store.ProbeTimeout)
	return seedWhenReady(ctx, cfg, monitor, s)
}

// seedWhenReady waits a bounded time for the store before seeding it.
func seedWhenReady(ctx context.Context, cfg *config.Config, monitor *store.Monitor, target seed.Target) error {
	waitCtx, cancel := context.WithTimeout(ctx, seedWaitTimeout(cfg))
	defer cancel()
	if err := monitor.WaitReady(waitCtx); err != nil {
		return err
	}

	return seed.Run(ctx, target)
}

func seedWaitTimeout(cfg *config.Config) time.Duration {
	return 5*cfg.Store.ProbeInterval + cfg.Store.ProbeTimeout
}

func initLogging(cfg *config.Config) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
}
