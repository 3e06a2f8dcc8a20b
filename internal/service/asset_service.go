package service

import (
	"context"
	"strings"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetService handles asset-related business logic
type AssetService struct {
	store *Store
}

// NewAssetService creates a new AssetService
func NewAssetService(store *Store) *AssetService {
	return &AssetService{store: store}
}

// CreateAssetInput holds the input for creating an asset
type CreateAssetInput struct {
	Name        string
	Value       decimal.Decimal
	Category    domain.AssetCategory
	Description string
}

func validateAsset(a *domain.Asset) error {
	name, err := validateName(a.Name)
	if err != nil {
		return err
	}
	a.Name = name
	a.Description = strings.TrimSpace(a.Description)
	if !a.Category.IsValid() {
		return domain.ErrInvalidCategory
	}
	return nil
}

// CreateAsset adds an asset and records the resulting net worth
func (s *AssetService) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	asset := domain.Asset{
		Name:        input.Name,
		Value:       input.Value,
		Category:    input.Category,
		Description: input.Description,
	}
	if err := validateAsset(&asset); err != nil {
		return nil, err
	}

	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		asset.ID = uuid.NewString()
		asset.CreatedAt = now
		data.Assets = append(data.Assets, asset)
		return true, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeAsset, "create", err)
		return nil, err
	}

	s.store.publishEvent(websocket.AssetCreated(asset))
	return &asset, nil
}

// GetAssets returns all assets in insertion order
func (s *AssetService) GetAssets(ctx context.Context) ([]domain.Asset, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data.Assets, nil
}

// GetAsset returns a single asset
func (s *AssetService) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	asset := data.FindAsset(id)
	if asset == nil {
		return nil, domain.ErrAssetNotFound
	}
	return asset, nil
}

// UpdateAsset applies a partial update
func (s *AssetService) UpdateAsset(ctx context.Context, id string, patch domain.AssetPatch) (*domain.Asset, error) {
	var updated domain.Asset
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		asset := data.FindAsset(id)
		if asset == nil {
			return false, domain.ErrAssetNotFound
		}
		patch.Apply(asset)
		if err := validateAsset(asset); err != nil {
			return false, err
		}
		updated = *asset
		return true, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeAsset, "update", err)
		return nil, err
	}

	s.store.publishEvent(websocket.AssetUpdated(updated))
	return &updated, nil
}

// DeleteAsset removes an asset. Transactions linked to it keep their dangling link.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		for i := range data.Assets {
			if data.Assets[i].ID == id {
				data.Assets = append(data.Assets[:i], data.Assets[i+1:]...)
				return true, nil
			}
		}
		return false, domain.ErrAssetNotFound
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeAsset, "delete", err)
		return err
	}

	s.store.publishEvent(websocket.AssetDeleted(map[string]string{"id": id}))
	return nil
}
