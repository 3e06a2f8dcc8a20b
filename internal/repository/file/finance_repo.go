package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dafibh/fortuna/networth/internal/domain"
)

// FinanceRepository implements domain.FinanceRepository on a single JSON file
type FinanceRepository struct {
	path string
}

// NewFinanceRepository creates a new FinanceRepository writing to path
func NewFinanceRepository(path string) (*FinanceRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FinanceRepository{path: path}, nil
}

// Path returns the data file location
func (r *FinanceRepository) Path() string {
	return r.path
}

// Load reads the data file. A missing or empty file means nothing was stored yet.
func (r *FinanceRepository) Load(ctx context.Context) (*domain.FinanceData, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return domain.DecodeFinanceData(raw)
}

// Save replaces the data file. The new content is written to a sibling temp file and
// renamed into place so a crash never leaves a truncated file behind.
func (r *FinanceRepository) Save(ctx context.Context, data *domain.FinanceData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := domain.EncodeFinanceData(data)
	if err != nil {
		return fmt.Errorf("failed to encode finance data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
