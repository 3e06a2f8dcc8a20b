package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditCard struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	OutstandingDebt decimal.Decimal `json:"outstandingDebt"`
	APR             decimal.Decimal `json:"apr"`
	PaymentDay      int             `json:"paymentDay"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AvailableCredit is derived and never persisted. It goes negative when the card is over limit.
func (c CreditCard) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.OutstandingDebt)
}

// Utilization returns debt as a percentage of the limit, zero for a card without a limit
func (c CreditCard) Utilization() decimal.Decimal {
	return UtilizationPercent(c.OutstandingDebt, c.CreditLimit)
}

// UtilizationPercent returns debt/limit*100, or zero when limit is not positive
func UtilizationPercent(debt, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return debt.Div(limit).Mul(decimal.NewFromInt(100))
}

// CreditCardPatch is a partial update; nil fields are left untouched
type CreditCardPatch struct {
	Name            *string          `json:"name,omitempty"`
	CreditLimit     *decimal.Decimal `json:"creditLimit,omitempty"`
	OutstandingDebt *decimal.Decimal `json:"outstandingDebt,omitempty"`
	APR             *decimal.Decimal `json:"apr,omitempty"`
	PaymentDay      *int             `json:"paymentDay,omitempty"`
}

func (p CreditCardPatch) Apply(c *CreditCard) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.CreditLimit != nil {
		c.CreditLimit = *p.CreditLimit
	}
	if p.OutstandingDebt != nil {
		c.OutstandingDebt = *p.OutstandingDebt
	}
	if p.APR != nil {
		c.APR = *p.APR
	}
	if p.PaymentDay != nil {
		c.PaymentDay = *p.PaymentDay
	}
}

// FindCreditCard returns the card with the given id, or nil
func (d *FinanceData) FindCreditCard(id string) *CreditCard {
	for i := range d.CreditCards {
		if d.CreditCards[i].ID == id {
			return &d.CreditCards[i]
		}
	}
	return nil
}
