package domain

import "github.com/shopspring/decimal"

// AccountType identifies which collection a transaction's account link points into.
type AccountType string

const (
	AccountTypeAsset      AccountType = "asset"
	AccountTypeLiability  AccountType = "liability"
	AccountTypeCreditCard AccountType = "creditCard"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeCreditCard:
		return true
	}
	return false
}

// CreditCardCategory is the category a transaction inherits when linked to a credit card.
const CreditCardCategory = "Credit Card"

// AccountRef is a resolved view of whatever a transaction's account link points to.
// Balance is the asset value, the liability value or the card's outstanding debt.
type AccountRef struct {
	ID       string          `json:"id"`
	Type     AccountType     `json:"type"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Balance  decimal.Decimal `json:"balance"`
}

// FindAccount resolves an account link. The link is a weak reference: the account may
// have been deleted, in which case ok is false.
func (d *FinanceData) FindAccount(id string, accountType AccountType) (ref AccountRef, ok bool) {
	if id == "" {
		return AccountRef{}, false
	}
	switch accountType {
	case AccountTypeAsset:
		if a := d.FindAsset(id); a != nil {
			return AccountRef{ID: a.ID, Type: accountType, Name: a.Name, Category: string(a.Category), Balance: a.Value}, true
		}
	case AccountTypeLiability:
		if l := d.FindLiability(id); l != nil {
			return AccountRef{ID: l.ID, Type: accountType, Name: l.Name, Category: string(l.Category), Balance: l.Value}, true
		}
	case AccountTypeCreditCard:
		if c := d.FindCreditCard(id); c != nil {
			return AccountRef{ID: c.ID, Type: accountType, Name: c.Name, Category: CreditCardCategory, Balance: c.OutstandingDebt}, true
		}
	}
	return AccountRef{}, false
}
