package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/config"
	"github.com/kiruha311/micro-learning-bot/internal/delivery/status"
	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/infra/postgres"
	"github.com/kiruha311/micro-learning-bot/internal/infra/postgres/repository"
	"github.com/kiruha311/micro-learning-bot/internal/infra/sqlite"
	"github.com/kiruha311/micro-learning-bot/internal/service"
)

// store bundles the repositories of one backend.
type store struct {
	users    service.UserRepository
	sent     service.SentArticleRepository
	actions  service.ActionRepository
	overview status.OverviewReader
	pinger   status.Pinger
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, cal entities.Calendar, log *zap.Logger) (*store, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, cal, log)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, cal, log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.DB.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, cal entities.Calendar, log *zap.Logger) (*store, error) {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	version, dirty, err := postgres.RunMigrations(pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	log.Info("postgres ready", zap.Uint("schema_version", version), zap.Bool("dirty", dirty))

	tx := postgres.NewTransactor(pool)

	return &store{
		users:    repository.NewUserRepository(pool, cal),
		sent:     repository.NewSentArticleRepository(pool, tx, cal),
		actions:  repository.NewActionRepository(pool, cal),
		overview: repository.NewOverviewRepository(tx, cal),
		pinger:   status.PingFunc(pool.Ping),
		close:    pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, cal entities.Calendar, log *zap.Logger) (*store, error) {
	db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	log.Info("sqlite ready", zap.String("path", cfg.DB.SQLitePath))

	return &store{
		users:    sqlite.NewUserRepository(db, cal),
		sent:     sqlite.NewSentArticleRepository(db, cal),
		actions:  sqlite.NewActionRepository(db, cal),
		overview: sqlite.NewOverviewRepository(db, cal),
		pinger:   status.PingFunc(db.PingContext),
		close: func() {
			if err := db.Close(); err != nil {
				log.Warn("failed to close sqlite", zap.Error(err))
			}
		},
	}, nil
}
