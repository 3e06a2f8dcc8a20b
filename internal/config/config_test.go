package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("LOCATION", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, "data/finance-data.json", cfg.DataFile)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.False(t, cfg.S3.Enabled())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres", "DATABASE_URL": ""}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}, "unknown STORAGE_DRIVER"},
		{"backup without bucket", map[string]string{"BACKUP_SCHEDULE": "@daily", "S3_BUCKET": ""}, "S3_BUCKET"},
		{"bad rate limit", map[string]string{"RATE_LIMIT_PER_MINUTE": "lots"}, "RATE_LIMIT_PER_MINUTE"},
		{"bad location", map[string]string{"LOCATION": "Mars/Olympus"}, "LOCATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_SQLite(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/networth.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/networth.db", cfg.SQLitePath)
}
