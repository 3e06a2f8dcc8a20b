package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type TransactionStatus string

const (
	TransactionStatusEstimated TransactionStatus = "estimated"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
)

func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusEstimated || s == TransactionStatusConfirmed
}

// Transaction is an estimated or confirmed cash movement. Amount is always a magnitude;
// the direction comes from Type.
type Transaction struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Amount              decimal.Decimal   `json:"amount"`
	Type                TransactionType   `json:"type"`
	Category            string            `json:"category"`
	Recurring           bool              `json:"recurring"`
	Frequency           Frequency         `json:"frequency,omitempty"`
	AccountID           string            `json:"accountId,omitempty"`
	AccountType         AccountType       `json:"accountType,omitempty"`
	DayOfMonth          *int              `json:"dayOfMonth,omitempty"`
	Status              TransactionStatus `json:"status"`
	LastConfirmedDate   *time.Time        `json:"lastConfirmedDate,omitempty"`
	LastConfirmedAmount *decimal.Decimal  `json:"lastConfirmedAmount,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// HasAccountLink reports whether the transaction points at an account
func (t Transaction) HasAccountLink() bool {
	return t.AccountID != "" && t.AccountType != ""
}

// EffectiveAmount is the last confirmed amount of a confirmed transaction, else the estimate
func (t Transaction) EffectiveAmount() decimal.Decimal {
	if t.Status == TransactionStatusConfirmed && t.LastConfirmedAmount != nil {
		return *t.LastConfirmedAmount
	}
	return t.Amount
}

// TransactionPatch is a partial update; nil fields are left untouched.
// An empty AccountID removes the account link and a zero DayOfMonth clears the due day.
// The confirmation fields are only ever written by settlement.
type TransactionPatch struct {
	Name        *string            `json:"name,omitempty"`
	Amount      *decimal.Decimal   `json:"amount,omitempty"`
	Type        *TransactionType   `json:"type,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Recurring   *bool              `json:"recurring,omitempty"`
	Frequency   *Frequency         `json:"frequency,omitempty"`
	AccountID   *string            `json:"accountId,omitempty"`
	AccountType *AccountType       `json:"accountType,omitempty"`
	DayOfMonth  *int               `json:"dayOfMonth,omitempty"`
	Status      *TransactionStatus `json:"status,omitempty"`
}

func (p TransactionPatch) Apply(t *Transaction) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	if p.AccountID != nil {
		t.AccountID = *p.AccountID
		if t.AccountID == "" {
			t.AccountType = ""
		}
	}
	if p.AccountType != nil && t.AccountID != "" {
		t.AccountType = *p.AccountType
	}
	if p.DayOfMonth != nil {
		if *p.DayOfMonth == 0 {
			t.DayOfMonth = nil
		} else {
			day := *p.DayOfMonth
			t.DayOfMonth = &day
		}
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// FindTransaction returns the transaction with the given id, or nil
func (d *FinanceData) FindTransaction(id string) *Transaction {
	for i := range d.Transactions {
		if d.Transactions[i].ID == id {
			return &d.Transactions[i]
		}
	}
	return nil
}
