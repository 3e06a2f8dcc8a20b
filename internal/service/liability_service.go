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

// LiabilityService handles liability-related business logic
type LiabilityService struct {
	store *Store
}

// NewLiabilityService creates a new LiabilityService
func NewLiabilityService(store *Store) *LiabilityService {
	return &LiabilityService{store: store}
}

// CreateLiabilityInput holds the input for creating a liability
type CreateLiabilityInput struct {
	Name         string
	Value        decimal.Decimal
	Category     domain.LiabilityCategory
	InterestRate *decimal.Decimal
	Description  string
}

func validateLiability(l *domain.Liability) error {
	name, err := validateName(l.Name)
	if err != nil {
		return err
	}
	l.Name = name
	l.Description = strings.TrimSpace(l.Description)
	if !l.Category.IsValid() {
		return domain.ErrInvalidCategory
	}
	if l.InterestRate != nil {
		if err := validateNonNegative(*l.InterestRate); err != nil {
			return err
		}
	}
	return nil
}

// CreateLiability adds a liability and records the resulting net worth
func (s *LiabilityService) CreateLiability(ctx context.Context, input CreateLiabilityInput) (*domain.Liability, error) {
	liability := domain.Liability{
		Name:         input.Name,
		Value:        input.Value,
		Category:     input.Category,
		InterestRate: input.InterestRate,
		Description:  input.Description,
	}
	if err := validateLiability(&liability); err != nil {
		return nil, err
	}

	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		liability.ID = uuid.NewString()
		liability.CreatedAt = now
		data.Liabilities = append(data.Liabilities, liability)
		return true, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeLiability, "create", err)
		return nil, err
	}

	s.store.publishEvent(websocket.LiabilityCreated(liability))
	return &liability, nil
}

// GetLiabilities returns all liabilities in insertion order
func (s *LiabilityService) GetLiabilities(ctx context.Context) ([]domain.Liability, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data.Liabilities, nil
}

// GetLiability returns a single liability
func (s *LiabilityService) GetLiability(ctx context.Context, id string) (*domain.Liability, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	liability := data.FindLiability(id)
	if liability == nil {
		return nil, domain.ErrLiabilityNotFound
	}
	return liability, nil
}

// UpdateLiability applies a partial update
func (s *LiabilityService) UpdateLiability(ctx context.Context, id string, patch domain.LiabilityPatch) (*domain.Liability, error) {
	var updated domain.Liability
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		liability := data.FindLiability(id)
		if liability == nil {
			return false, domain.ErrLiabilityNotFound
		}
		patch.Apply(liability)
		if err := validateLiability(liability); err != nil {
			return false, err
		}
		updated = *liability
		return true, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeLiability, "update", err)
		return nil, err
	}

	s.store.publishEvent(websocket.LiabilityUpdated(updated))
	return &updated, nil
}

// DeleteLiability removes a liability
func (s *LiabilityService) DeleteLiability(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		for i := range data.Liabilities {
			if data.Liabilities[i].ID == id {
				data.Liabilities = append(data.Liabilities[:i], data.Liabilities[i+1:]...)
				return true, nil
			}
		}
		return false, domain.ErrLiabilityNotFound
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeLiability, "delete", err)
		return err
	}

	s.store.publishEvent(websocket.LiabilityDeleted(map[string]string{"id": id}))
	return nil
}
