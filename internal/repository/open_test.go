package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dafibh/fortuna/networth/internal/config"
	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_FileAndSQLite(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, cfg := range []*config.Config{
		{StorageDriver: config.StorageFile, DataFile: filepath.Join(dir, "data.json")},
		{StorageDriver: config.StorageSQLite, SQLitePath: filepath.Join(dir, "data.db")},
	} {
		t.Run(cfg.StorageDriver, func(t *testing.T) {
			repo, closeFn, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer closeFn()

			loaded, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, loaded)

			data := domain.NewFinanceData()
			data.Settings.Currency = "EUR"
			require.NoError(t, repo.Save(ctx, data))

			loaded, err = repo.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, "EUR", loaded.Settings.Currency)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageDriver: "mongo"})
	assert.Error(t, err)
}
