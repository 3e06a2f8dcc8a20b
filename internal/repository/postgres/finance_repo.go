package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createFinanceDataTable = `
CREATE TABLE IF NOT EXISTS finance_data (
	id         SMALLINT PRIMARY KEY CHECK (id = 1),
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// FinanceRepository implements domain.FinanceRepository as a single jsonb document row
type FinanceRepository struct {
	pool *pgxpool.Pool
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(pool *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{pool: pool}
}

// Migrate creates the document table if it does not exist
func (r *FinanceRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createFinanceDataTable); err != nil {
		return fmt.Errorf("failed to create finance_data table: %w", err)
	}
	return nil
}

// Load reads the document, or nil when nothing was saved yet
func (r *FinanceRepository) Load(ctx context.Context) (*domain.FinanceData, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM finance_data WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query finance data: %w", err)
	}
	return domain.DecodeFinanceData(raw)
}

// Save upserts the document
func (r *FinanceRepository) Save(ctx context.Context, data *domain.FinanceData) error {
	raw, err := domain.EncodeFinanceData(data)
	if err != nil {
		return fmt.Errorf("failed to encode finance data: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO finance_data (id, data, updated_at) VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		string(raw))
	if err != nil {
		return fmt.Errorf("failed to save finance data: %w", err)
	}
	return nil
}
