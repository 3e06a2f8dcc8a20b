package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic, including confirmation of
// recurring transactions
type TransactionService struct {
	store *Store
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(store *Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Name        string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Category    string
	Recurring   bool
	Frequency   domain.Frequency
	AccountID   string
	AccountType domain.AccountType
	DayOfMonth  *int
	Status      domain.TransactionStatus
}

// linkAccount verifies a newly set account link and fills an empty category from it
func linkAccount(data *domain.FinanceData, tx *domain.Transaction) error {
	if !tx.HasAccountLink() {
		return nil
	}
	ref, ok := data.FindAccount(tx.AccountID, tx.AccountType)
	if !ok {
		return domain.ErrAccountNotFound
	}
	if tx.Category == "" {
		tx.Category = ref.Category
	}
	return nil
}

// CreateTransaction adds a transaction. Transactions never move net worth on their own.
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	tx := domain.Transaction{
		Name:        input.Name,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Recurring:   input.Recurring,
		Frequency:   input.Frequency,
		AccountID:   input.AccountID,
		AccountType: input.AccountType,
		DayOfMonth:  input.DayOfMonth,
		Status:      input.Status,
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusEstimated
	}
	if tx.AccountID == "" {
		tx.AccountType = ""
	}
	if err := validateTransaction(&tx); err != nil {
		return nil, err
	}

	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		if err := linkAccount(data, &tx); err != nil {
			return false, err
		}
		tx.ID = uuid.NewString()
		tx.CreatedAt = now
		data.Transactions = append(data.Transactions, tx)
		return false, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeTransaction, "create", err)
		return nil, err
	}

	s.store.publishEvent(websocket.TransactionCreated(tx))
	return &tx, nil
}

// GetTransactions returns all transactions in insertion order
func (s *TransactionService) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return data.Transactions, nil
}

// GetTransaction returns a single transaction
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	tx := data.FindTransaction(id)
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// UpdateTransaction applies a partial update. A confirmed transaction stays confirmed
// after an edit; only an explicit status in the patch changes it.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var updated domain.Transaction
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		tx := data.FindTransaction(id)
		if tx == nil {
			return false, domain.ErrTransactionNotFound
		}
		patch.Apply(tx)
		if err := validateTransaction(tx); err != nil {
			return false, err
		}
		if patch.AccountID != nil || patch.AccountType != nil {
			if err := linkAccount(data, tx); err != nil {
				return false, err
			}
		}
		updated = *tx
		return false, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeTransaction, "update", err)
		return nil, err
	}

	s.store.publishEvent(websocket.TransactionUpdated(updated))
	return &updated, nil
}

// DeleteTransaction removes a transaction in any state. Cancelling a due transaction is
// a delete and never touches the linked account.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		for i := range data.Transactions {
			if data.Transactions[i].ID == id {
				data.Transactions = append(data.Transactions[:i], data.Transactions[i+1:]...)
				return false, nil
			}
		}
		return false, domain.ErrTransactionNotFound
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeTransaction, "delete", err)
		return err
	}

	s.store.publishEvent(websocket.TransactionDeleted(map[string]string{"id": id}))
	return nil
}

// ConfirmTransaction records the actual amount of a transaction, optionally amending its
// account link first, and applies it to the linked account
func (s *TransactionService) ConfirmTransaction(ctx context.Context, id string, input domain.ConfirmInput) (*domain.SettlementResult, error) {
	return s.confirm(ctx, id, func(tx *domain.Transaction) domain.ConfirmInput {
		return input
	})
}

// QuickConfirmTransaction confirms a transaction at its estimated amount
func (s *TransactionService) QuickConfirmTransaction(ctx context.Context, id string) (*domain.SettlementResult, error) {
	return s.confirm(ctx, id, func(tx *domain.Transaction) domain.ConfirmInput {
		return domain.ConfirmInput{Amount: tx.Amount}
	})
}

func (s *TransactionService) confirm(ctx context.Context, id string, inputFor func(tx *domain.Transaction) domain.ConfirmInput) (*domain.SettlementResult, error) {
	var result *domain.SettlementResult
	snapshot, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		tx := data.FindTransaction(id)
		if tx == nil {
			return false, domain.ErrTransactionNotFound
		}
		settled, err := Settle(data, id, inputFor(tx), now)
		if err != nil {
			return false, err
		}
		result = settled
		return settled.Account != nil, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeTransaction, "confirm", err)
		return nil, err
	}
	result.SnapshotAppended = snapshot != nil

	s.store.publishEvent(websocket.TransactionConfirmed(result))
	if result.Account != nil {
		s.store.publishEvent(accountUpdatedEvent(*result.Account))
	}
	return result, nil
}

func accountUpdatedEvent(ref domain.AccountRef) websocket.Event {
	switch ref.Type {
	case domain.AccountTypeLiability:
		return websocket.LiabilityUpdated(ref)
	case domain.AccountTypeCreditCard:
		return websocket.CreditCardUpdated(ref)
	}
	return websocket.AssetUpdated(ref)
}

// DueTransactions lists the recurring transactions awaiting confirmation
func (s *TransactionService) DueTransactions(ctx context.Context) ([]domain.DueTransaction, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return DueTransactions(data, s.store.Now()), nil
}

// NotifyDue publishes the current due list when it is not empty
func (s *TransactionService) NotifyDue(ctx context.Context) ([]domain.DueTransaction, error) {
	due, err := s.DueTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if len(due) > 0 {
		s.store.publishEvent(websocket.TransactionsDue(due))
	}
	return due, nil
}

// GetSummary totals transactions by type. Estimated totals use the planned amounts;
// confirmed totals use what was actually confirmed.
func (s *TransactionService) GetSummary(ctx context.Context) (*domain.TransactionSummary, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return SummarizeTransactions(data.Transactions), nil
}

// SummarizeTransactions totals a transaction list
func SummarizeTransactions(transactions []domain.Transaction) *domain.TransactionSummary {
	summary := &domain.TransactionSummary{
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		ConfirmedIncome:   decimal.Zero,
		ConfirmedExpenses: decimal.Zero,
		Count:             len(transactions),
	}

	for _, tx := range transactions {
		if tx.Recurring {
			summary.RecurringCount++
		}
		confirmed := tx.Status == domain.TransactionStatusConfirmed
		switch tx.Type {
		case domain.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
			if confirmed {
				summary.ConfirmedIncome = summary.ConfirmedIncome.Add(tx.EffectiveAmount())
			}
		case domain.TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
			if confirmed {
				summary.ConfirmedExpenses = summary.ConfirmedExpenses.Add(tx.EffectiveAmount())
			}
		}
	}
	return summary
}
