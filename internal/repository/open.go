// Package repository selects the storage backend for the finance data blob.
package repository

import (
	"context"
	"fmt"

	"github.com/dafibh/fortuna/networth/internal/config"
	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/repository/file"
	"github.com/dafibh/fortuna/networth/internal/repository/postgres"
	"github.com/dafibh/fortuna/networth/internal/repository/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open returns the repository for the configured storage driver and a function
// releasing its resources.
func Open(ctx context.Context, cfg *config.Config) (domain.FinanceRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageFile:
		repo, err := file.NewFinanceRepository(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", repo.Path()).Msg("Using file storage")
		return repo, func() {}, nil

	case config.StorageSQLite:
		repo, err := sqlite.NewFinanceRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Using sqlite storage")
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close sqlite database")
			}
		}, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		repo := postgres.NewFinanceRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Msg("Connected to database")
		return repo, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
