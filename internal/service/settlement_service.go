package service

import (
	"fmt"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// Settle confirms a transaction inside data with the actual amount and carries the
// effect onto the linked account. A link that no longer resolves is not an error: the
// balance step is skipped and the result reports the account as missing.
func Settle(data *domain.FinanceData, id string, input domain.ConfirmInput, now time.Time) (*domain.SettlementResult, error) {
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	tx := data.FindTransaction(id)
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}

	// Amend flow: the account link may be changed while confirming. A new link must
	// resolve, the same as on create and update; an existing dangling link stays soft.
	if input.AccountID == nil && input.AccountType != nil {
		return nil, fmt.Errorf("%w: accountType requires accountId", domain.ErrInvalidInput)
	}
	if input.AccountID != nil {
		if *input.AccountID == "" {
			tx.AccountID = ""
			tx.AccountType = ""
		} else {
			if input.AccountType == nil || !input.AccountType.IsValid() {
				return nil, domain.ErrInvalidAccountType
			}
			ref, ok := data.FindAccount(*input.AccountID, *input.AccountType)
			if !ok {
				return nil, domain.ErrAccountNotFound
			}
			tx.AccountID = ref.ID
			tx.AccountType = ref.Type
			if tx.Category == "" {
				tx.Category = ref.Category
			}
		}
	}

	amount := input.Amount
	confirmedAt := now
	tx.Status = domain.TransactionStatusConfirmed
	tx.LastConfirmedDate = &confirmedAt
	tx.LastConfirmedAmount = &amount

	result := &domain.SettlementResult{}
	if tx.HasAccountLink() {
		ref, ok := ApplyAccountEffect(data, tx.AccountID, tx.AccountType, tx.Type, amount)
		if ok {
			result.Account = &ref
		} else {
			result.AccountMissing = true
		}
	}
	result.Transaction = *tx

	return result, nil
}

// ApplyAccountEffect moves the balance of the referenced account by amount in the
// direction implied by the transaction type. Income grows an asset and shrinks a debt;
// expense does the opposite. Card debt never drops below zero.
func ApplyAccountEffect(data *domain.FinanceData, accountID string, accountType domain.AccountType, txType domain.TransactionType, amount decimal.Decimal) (domain.AccountRef, bool) {
	income := txType == domain.TransactionTypeIncome

	switch accountType {
	case domain.AccountTypeAsset:
		if a := data.FindAsset(accountID); a != nil {
			if income {
				a.Value = a.Value.Add(amount)
			} else {
				a.Value = a.Value.Sub(amount)
			}
		}
	case domain.AccountTypeLiability:
		if l := data.FindLiability(accountID); l != nil {
			if income {
				l.Value = l.Value.Sub(amount)
			} else {
				l.Value = l.Value.Add(amount)
			}
		}
	case domain.AccountTypeCreditCard:
		if c := data.FindCreditCard(accountID); c != nil {
			if income {
				c.OutstandingDebt = decimal.Max(c.OutstandingDebt.Sub(amount), decimal.Zero)
			} else {
				c.OutstandingDebt = c.OutstandingDebt.Add(amount)
			}
		}
	}

	return data.FindAccount(accountID, accountType)
}
