package domain

import "github.com/shopspring/decimal"

// Totals are the aggregate metrics derived from the entity collections
type Totals struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalCreditLimit decimal.Decimal `json:"totalCreditLimit"`
	TotalCreditDebt  decimal.Decimal `json:"totalCreditDebt"`
	AvailableCredit  decimal.Decimal `json:"availableCredit"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// CategoryAmount is a per-category sum
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CashFlow summarizes recurring income against recurring expenses
type CashFlow struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	Net             decimal.Decimal `json:"net"`
}

// CardUtilization is the utilization of a single credit card
type CardUtilization struct {
	CardID          string          `json:"cardId"`
	Name            string          `json:"name"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	OutstandingDebt decimal.Decimal `json:"outstandingDebt"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
	Percent         decimal.Decimal `json:"percent"`
}

// CreditUtilization covers all cards
type CreditUtilization struct {
	Percent decimal.Decimal   `json:"percent"`
	Rating  string            `json:"rating"`
	Cards   []CardUtilization `json:"cards"`
}

// Utilization rating bands, in percent
const (
	UtilizationExcellent = "Excellent"
	UtilizationGood      = "Good"
	UtilizationFair      = "Fair"
	UtilizationHigh      = "Consider paying down"
)

// DashboardSummary contains the main dashboard metrics
type DashboardSummary struct {
	Totals            Totals            `json:"totals"`
	FormattedNetWorth string            `json:"formattedNetWorth"`
	Currency          string            `json:"currency"`
	CashFlow          CashFlow          `json:"cashFlow"`
	AssetsByCategory  []CategoryAmount  `json:"assetsByCategory"`
	CreditUtilization CreditUtilization `json:"creditUtilization"`
	DueCount          int               `json:"dueCount"`
	SnapshotCount     int               `json:"snapshotCount"`
}

// TransactionSummary totals the transaction list by type
type TransactionSummary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	ConfirmedIncome   decimal.Decimal `json:"confirmedIncome"`
	ConfirmedExpenses decimal.Decimal `json:"confirmedExpenses"`
	Count             int             `json:"count"`
	RecurringCount    int             `json:"recurringCount"`
}
