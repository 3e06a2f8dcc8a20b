package domain

import "github.com/shopspring/decimal"

// ConfirmInput holds the actual amount of a confirmation and an optional account amendment
type ConfirmInput struct {
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *string         `json:"accountId,omitempty"`
	AccountType *AccountType    `json:"accountType,omitempty"`
}

// SettlementResult describes the outcome of confirming a transaction
type SettlementResult struct {
	Transaction      Transaction `json:"transaction"`
	Account          *AccountRef `json:"account,omitempty"`
	AccountMissing   bool        `json:"accountMissing"`
	SnapshotAppended bool        `json:"snapshotAppended"`
}
