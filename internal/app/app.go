// Package app wires configuration, storage, transport and services into a
// running prodsearch instance.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/prodsearch/internal/adapters/driven/productapi"
	"github.com/custodia-labs/prodsearch/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/prodsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/prodsearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/prodsearch/internal/adapters/driven/telemetry"
	"github.com/custodia-labs/prodsearch/internal/config"
	"github.com/custodia-labs/prodsearch/internal/core/domain"
	"github.com/custodia-labs/prodsearch/internal/core/ports/driven"
	"github.com/custodia-labs/prodsearch/internal/core/services"
	"github.com/custodia-labs/prodsearch/internal/logger"
)

// App holds the wired components.
type App struct {
	Config   *config.Config
	Store    driven.KeyValueStore
	Identity *services.IdentityService
	Search   *services.SearchService
	Limiter  *productapi.RateLimiter
	Client   *productapi.Client

	providers *telemetry.Providers
	closers   []func() error
}

// New builds an App from cfg. Close must be called when done.
func New(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	logger.Section("Bootstrap")

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    "prodsearch",
		ServiceVersion: version,
		Exporter:       cfg.Telemetry.Exporter,
		Insecure:       cfg.Telemetry.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	a := &App{Config: cfg, providers: providers}

	store, closeStore, err := OpenStore(cfg.Storage)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Store = store
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}
	logger.Info("Storage: %s (%s)", cfg.Storage.Backend, store.Path())

	a.Limiter = productapi.NewRateLimiter(productapi.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.PerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})

	a.Client, err = productapi.NewClient(productapi.Config{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout.Std(),
		UserAgent:   "prodsearch/" + version,
		RateLimiter: a.Limiter,
	})
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("product client: %w", err)
	}
	logger.Info("Endpoint: %s", a.Client.BaseURL())

	a.Identity = services.NewIdentityService(store)
	a.Search = services.NewSearchService(a.Identity, a.Client)
	a.Search.SetThrottle(a.Limiter)
	a.Search.SetIdentifierLength(cfg.IdentityLength)

	return a, nil
}

// OpenStore opens the configured key-value backend. The returned close
// function may be nil.
func OpenStore(cfg config.StorageConfig) (driven.KeyValueStore, func() error, error) {
	switch cfg.Backend {
	case "", config.BackendFile:
		s, err := file.NewStore(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}
		return s, nil, nil
	case config.BackendSQLite:
		s, err := sqlite.NewStore(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return memory.NewStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, cfg.Backend)
	}
}

// Watcher is implemented by stores that can follow external edits.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Watcher returns the store as a Watcher when the backend supports it.
func (a *App) Watcher() (Watcher, bool) {
	w, ok := a.Store.(Watcher)
	return w, ok
}

// Close releases the store and flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if a.providers != nil {
		if err := a.providers.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		a.providers = nil
	}
	return errors.Join(errs...)
}
