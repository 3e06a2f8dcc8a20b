package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCardService handles credit card business logic
type CreditCardService struct {
	store *Store
}

// NewCreditCardService creates a new CreditCardService
func NewCreditCardService(store *Store) *CreditCardService {
	return &CreditCardService{store: store}
}

// CreateCreditCardInput holds the input for creating a credit card
type CreateCreditCardInput struct {
	Name            string
	CreditLimit     decimal.Decimal
	OutstandingDebt decimal.Decimal
	APR             decimal.Decimal
	PaymentDay      int
}

func validateCreditCard(c *domain.CreditCard) error {
	name, err := validateName(c.Name)
	if err != nil {
		return err
	}
	c.Name = name
	if err := validateNonNegative(c.CreditLimit); err != nil {
		return err
	}
	if err := validateNonNegative(c.OutstandingDebt); err != nil {
		return err
	}
	if err := validateNonNegative(c.APR); err != nil {
		return err
	}
	return validatePaymentDay(c.PaymentDay)
}

// CreateCreditCard adds a credit card and records the resulting net worth
func (s *CreditCardService) CreateCreditCard(ctx context.Context, input CreateCreditCardInput) (*domain.CreditCard, error) {
	card := domain.CreditCard{
		Name:            input.Name,
		CreditLimit:     input.CreditLimit,
		OutstandingDebt: input.OutstandingDebt,
		APR:             input.APR,
		PaymentDay:      input.PaymentDay,
	}
	if err := validateCreditCard(&card); err != nil {
		return nil, err
	}

	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		card.ID = uuid.NewString()
		card.CreatedAt = now
		data.CreditCards = append(data.CreditCards, card)
		return true, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeCreditCard, "create", err)
		return nil, err
	}

	s.store.publishEvent(websocket.CreditCardCreated(card))
	return &card, nil
}

// GetCreditCards returns all cards in insertion order
func (s *CreditCardService) GetCreditCards(ctx context.Context) ([]domain.CreditCard, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data.CreditCards, nil
}

// GetCreditCard returns a single card
func (s *CreditCardService) GetCreditCard(ctx context.Context, id string) (*domain.CreditCard, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	card := data.FindCreditCard(id)
	if card == nil {
		return nil, domain.ErrCreditCardNotFound
	}
	return card, nil
}

// UpdateCreditCard applies a partial update
func (s *CreditCardService) UpdateCreditCard(ctx context.Context, id string, patch domain.CreditCardPatch) (*domain.CreditCard, error) {
	var updated domain.CreditCard
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		card := data.FindCreditCard(id)
		if card == nil {
			return false, domain.ErrCreditCardNotFound
		}
		patch.Apply(card)
		if err := validateCreditCard(card); err != nil {
			return false, err
		}
		updated = *card
		return true, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeCreditCard, "update", err)
		return nil, err
	}

	s.store.publishEvent(websocket.CreditCardUpdated(updated))
	return &updated, nil
}

// DeleteCreditCard removes a card
func (s *CreditCardService) DeleteCreditCard(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		for i := range data.CreditCards {
			if data.CreditCards[i].ID == id {
				data.CreditCards = append(data.CreditCards[:i], data.CreditCards[i+1:]...)
				return true, nil
			}
		}
		return false, domain.ErrCreditCardNotFound
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeCreditCard, "delete", err)
		return err
	}

	s.store.publishEvent(websocket.CreditCardDeleted(map[string]string{"id": id}))
	return nil
}
