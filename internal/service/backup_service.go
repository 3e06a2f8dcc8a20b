package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
)

// BackupService copies exports to the backup repository
type BackupService struct {
	data   *DataService
	store  *Store
	backup domain.BackupRepository
}

// NewBackupService creates a new BackupService
func NewBackupService(data *DataService, store *Store, backup domain.BackupRepository) *BackupService {
	return &BackupService{
		data:   data,
		store:  store,
		backup: backup,
	}
}

// BackupResult describes a stored backup
type BackupResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	Size     int    `json:"size"`
}

// BackupKey names a backup object after the instant it was taken
func BackupKey(fileName string, at time.Time) string {
	return fmt.Sprintf("backups/%s/%s", at.Format("20060102T150405"), fileName)
}

// Backup exports the aggregate and uploads it
func (s *BackupService) Backup(ctx context.Context) (*BackupResult, error) {
	if s.backup == nil {
		return nil, domain.ErrBackupNotConfigured
	}

	export, err := s.data.Export(ctx)
	if err != nil {
		return nil, err
	}

	key := BackupKey(export.FileName, s.store.Now().UTC())
	location, err := s.backup.Upload(ctx, key, export.Content)
	if err != nil {
		err = fmt.Errorf("failed to upload backup: %w", err)
		s.store.publishFailure(websocket.EntityTypeData, "backup", err)
		return nil, err
	}

	result := &BackupResult{Key: key, Location: location, Size: len(export.Content)}
	s.store.publishEvent(websocket.DataBackedUp(result))
	return result, nil
}
