package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const financeDataKey = "financeData"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// FinanceRepository implements domain.FinanceRepository on a key-value table in an
// embedded SQLite database
type FinanceRepository struct {
	conn *sql.DB
	path string
}

// NewFinanceRepository opens (and if needed creates) the database at dbPath
func NewFinanceRepository(dbPath string) (*FinanceRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// One writer at a time; the store already serializes mutations
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &FinanceRepository{conn: conn, path: dbPath}, nil
}

// Close closes the database connection
func (r *FinanceRepository) Close() error {
	return r.conn.Close()
}

// Load reads the stored blob, or nil when nothing was saved yet
func (r *FinanceRepository) Load(ctx context.Context) (*domain.FinanceData, error) {
	var value string
	err := r.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, financeDataKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query finance data: %w", err)
	}
	return domain.DecodeFinanceData([]byte(value))
}

// Save upserts the blob
func (r *FinanceRepository) Save(ctx context.Context, data *domain.FinanceData) error {
	raw, err := domain.EncodeFinanceData(data)
	if err != nil {
		return fmt.Errorf("failed to encode finance data: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		financeDataKey, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save finance data: %w", err)
	}
	return nil
}
