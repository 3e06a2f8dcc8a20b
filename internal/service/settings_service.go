package service

import (
	"context"
	"strings"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/util"
	"github.com/dafibh/fortuna/networth/internal/websocket"
)

// SettingsService manages display preferences and the net-worth inclusion policy
type SettingsService struct {
	store *Store
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(store *Store) *SettingsService {
	return &SettingsService{store: store}
}

// GetSettings returns the current settings
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &data.Settings, nil
}

// UpdateSettings applies a partial update. The currency is a display label and changing
// it converts nothing. Settings changes do not record a snapshot.
func (s *SettingsService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error) {
	if patch.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*patch.Currency))
		if !util.IsKnownCurrency(code) {
			return nil, domain.ErrInvalidCurrency
		}
		patch.Currency = &code
	}
	if patch.Theme != nil && !patch.Theme.IsValid() {
		return nil, domain.ErrInvalidTheme
	}

	var updated domain.Settings
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		patch.Apply(&data.Settings)
		updated = data.Settings
		return false, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeSettings, "update", err)
		return nil, err
	}

	s.store.publishEvent(websocket.SettingsUpdated(updated))
	return &updated, nil
}
