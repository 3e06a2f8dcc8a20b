package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LiabilityCategory string

const (
	LiabilityCategoryMortgage     LiabilityCategory = "Mortgage"
	LiabilityCategoryStudentLoan  LiabilityCategory = "Student Loan"
	LiabilityCategoryCarLoan      LiabilityCategory = "Car Loan"
	LiabilityCategoryPersonalLoan LiabilityCategory = "Personal Loan"
	LiabilityCategoryMedicalDebt  LiabilityCategory = "Medical Debt"
	LiabilityCategoryTaxDebt      LiabilityCategory = "Tax Debt"
	LiabilityCategoryOtherDebt    LiabilityCategory = "Other Debt"
)

// LiabilityCategories lists the categories in display order
var LiabilityCategories = []LiabilityCategory{
	LiabilityCategoryMortgage,
	LiabilityCategoryStudentLoan,
	LiabilityCategoryCarLoan,
	LiabilityCategoryPersonalLoan,
	LiabilityCategoryMedicalDebt,
	LiabilityCategoryTaxDebt,
	LiabilityCategoryOtherDebt,
}

func (c LiabilityCategory) IsValid() bool {
	for _, known := range LiabilityCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Liability is an amount owed. A positive Value means debt.
type Liability struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Value        decimal.Decimal   `json:"value"`
	Category     LiabilityCategory `json:"category"`
	InterestRate *decimal.Decimal  `json:"interestRate,omitempty"`
	Description  string            `json:"description,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// LiabilityPatch is a partial update; nil fields are left untouched
type LiabilityPatch struct {
	Name         *string            `json:"name,omitempty"`
	Value        *decimal.Decimal   `json:"value,omitempty"`
	Category     *LiabilityCategory `json:"category,omitempty"`
	InterestRate *decimal.Decimal   `json:"interestRate,omitempty"`
	Description  *string            `json:"description,omitempty"`
}

func (p LiabilityPatch) Apply(l *Liability) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Value != nil {
		l.Value = *p.Value
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.InterestRate != nil {
		rate := *p.InterestRate
		l.InterestRate = &rate
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
}

// FindLiability returns the liability with the given id, or nil
func (d *FinanceData) FindLiability(id string) *Liability {
	for i := range d.Liabilities {
		if d.Liabilities[i].ID == id {
			return &d.Liabilities[i]
		}
	}
	return nil
}
