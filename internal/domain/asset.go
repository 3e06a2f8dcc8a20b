package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetCategory string

const (
	AssetCategoryStocks           AssetCategory = "Stocks"
	AssetCategoryCrypto           AssetCategory = "Crypto"
	AssetCategoryCash             AssetCategory = "Cash"
	AssetCategoryCashAtBank       AssetCategory = "Cash at Bank"
	AssetCategorySavings          AssetCategory = "Savings"
	AssetCategoryPreciousMetals   AssetCategory = "Precious Metals"
	AssetCategoryRealEstate       AssetCategory = "Real Estate"
	AssetCategoryVehicles         AssetCategory = "Vehicles"
	AssetCategoryPension          AssetCategory = "Pension"
	AssetCategoryOtherInvestments AssetCategory = "Other Investments"
)

// AssetCategories lists the categories in display order
var AssetCategories = []AssetCategory{
	AssetCategoryStocks,
	AssetCategoryCrypto,
	AssetCategoryCash,
	AssetCategoryCashAtBank,
	AssetCategorySavings,
	AssetCategoryPreciousMetals,
	AssetCategoryRealEstate,
	AssetCategoryVehicles,
	AssetCategoryPension,
	AssetCategoryOtherInvestments,
}

func (c AssetCategory) IsValid() bool {
	for _, known := range AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Asset struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Category    AssetCategory   `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AssetPatch is a partial update; nil fields are left untouched
type AssetPatch struct {
	Name        *string          `json:"name,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Category    *AssetCategory   `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// Apply copies the set fields of p onto a
func (p AssetPatch) Apply(a *Asset) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Value != nil {
		a.Value = *p.Value
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
}

// FindAsset returns the asset with the given id, or nil
func (d *FinanceData) FindAsset(id string) *Asset {
	for i := range d.Assets {
		if d.Assets[i].ID == id {
			return &d.Assets[i]
		}
	}
	return nil
}
