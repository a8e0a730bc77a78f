package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store question.Store
	pool  *pgxpool.Pool
	http  *http.Server
}

// New bootstraps the logger, the configured store and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	store, pool, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	rng := question.DefaultRandSource()
	if cfg.Quiz.RandomSeed != 0 {
		rng = question.NewSeededSource(cfg.Quiz.RandomSeed)
		logger.Info().Uint64("seed", cfg.Quiz.RandomSeed).Msg("quiz selection seeded")
	}

	handler := question.NewHTTPHandler(
		question.NewQueryService(store),
		question.NewMutationService(store),
		question.NewCategoryService(store),
		question.NewSelector(store, rng),
		logger,
	)

	return &Application{
		cfg:    cfg,
		logger: logger,
		store:  store,
		pool:   pool,
		http:   server.NewHTTPServer(cfg, logger, store, handler),
	}, nil
}

func openStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (question.Store, *pgxpool.Pool, error) {
	if cfg.Store.Driver == config.DriverMemory {
		store := memory.New()
		if cfg.Store.Seed {
			store.SeedCategories(memory.DefaultCategories()...)
		}
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		return store, nil, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info().Msg("database migrations applied")
	}

	return repository.NewStore(pool), pool, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrations.Run(ctx, db, migrations.CommandUp, ""); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.pool != nil {
		a.pool.Close()
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
