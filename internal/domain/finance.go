package domain

import "github.com/shopspring/decimal"

// FinanceData is the root aggregate and the single unit of persistence. It is read
// wholesale at startup and written wholesale after every mutation.
type FinanceData struct {
	Assets          []Asset            `json:"assets"`
	Liabilities     []Liability        `json:"liabilities"`
	CreditCards     []CreditCard       `json:"creditCards"`
	Transactions    []Transaction      `json:"transactions"`
	Settings        Settings           `json:"settings"`
	NetWorthHistory []NetWorthSnapshot `json:"netWorthHistory"`
}

// NewFinanceData returns an empty tracker with default settings
func NewFinanceData() *FinanceData {
	return &FinanceData{
		Assets:          []Asset{},
		Liabilities:     []Liability{},
		CreditCards:     []CreditCard{},
		Transactions:    []Transaction{},
		Settings:        DefaultSettings(),
		NetWorthHistory: []NetWorthSnapshot{},
	}
}

// Normalize fills the gaps left by older or partial blobs: missing collections become
// empty and missing settings take their defaults.
func (d *FinanceData) Normalize() {
	if d.Assets == nil {
		d.Assets = []Asset{}
	}
	if d.Liabilities == nil {
		d.Liabilities = []Liability{}
	}
	if d.CreditCards == nil {
		d.CreditCards = []CreditCard{}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.NetWorthHistory == nil {
		d.NetWorthHistory = []NetWorthSnapshot{}
	}
	if d.Settings.Currency == "" {
		d.Settings.Currency = DefaultCurrency
	}
	if d.Settings.Theme == "" {
		d.Settings.Theme = ThemeLight
	}
}

// Clone returns a deep copy. Mutations always run against a clone so that a failed
// operation never leaves a half-updated aggregate behind.
func (d *FinanceData) Clone() *FinanceData {
	c := &FinanceData{
		Assets:          append([]Asset{}, d.Assets...),
		Liabilities:     make([]Liability, len(d.Liabilities)),
		CreditCards:     append([]CreditCard{}, d.CreditCards...),
		Transactions:    make([]Transaction, len(d.Transactions)),
		Settings:        d.Settings,
		NetWorthHistory: append([]NetWorthSnapshot{}, d.NetWorthHistory...),
	}
	for i, l := range d.Liabilities {
		l.InterestRate = cloneDecimal(l.InterestRate)
		c.Liabilities[i] = l
	}
	for i, t := range d.Transactions {
		if t.DayOfMonth != nil {
			day := *t.DayOfMonth
			t.DayOfMonth = &day
		}
		if t.LastConfirmedDate != nil {
			at := *t.LastConfirmedDate
			t.LastConfirmedDate = &at
		}
		t.LastConfirmedAmount = cloneDecimal(t.LastConfirmedAmount)
		c.Transactions[i] = t
	}
	return c
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// LastSnapshot returns the most recent history entry
func (d *FinanceData) LastSnapshot() (NetWorthSnapshot, bool) {
	if len(d.NetWorthHistory) == 0 {
		return NetWorthSnapshot{}, false
	}
	return d.NetWorthHistory[len(d.NetWorthHistory)-1], true
}
