package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/util"
	"github.com/shopspring/decimal"
)

// Utilization rating thresholds, in percent
var (
	utilizationExcellentBelow = decimal.NewFromInt(30)
	utilizationGoodBelow      = decimal.NewFromInt(50)
	utilizationFairBelow      = decimal.NewFromInt(70)
)

// DashboardService assembles the dashboard summary
type DashboardService struct {
	store *Store
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(store *Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetSummary returns the dashboard metrics for the current state
func (s *DashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(data, s.store.Now()), nil
}

// BuildDashboard computes the dashboard from a FinanceData value
func BuildDashboard(data *domain.FinanceData, now time.Time) *domain.DashboardSummary {
	totals := CalculateTotals(data)

	return &domain.DashboardSummary{
		Totals:            totals,
		FormattedNetWorth: util.FormatMoney(totals.NetWorth, data.Settings.Currency),
		Currency:          data.Settings.Currency,
		CashFlow:          CalculateCashFlow(data.Transactions),
		AssetsByCategory:  AssetsByCategory(data.Assets),
		CreditUtilization: CalculateCreditUtilization(data.CreditCards, totals),
		DueCount:          len(DueTransactions(data, now)),
		SnapshotCount:     len(data.NetWorthHistory),
	}
}

// CalculateCashFlow sums the planned amounts of recurring transactions by type
func CalculateCashFlow(transactions []domain.Transaction) domain.CashFlow {
	flow := domain.CashFlow{
		MonthlyIncome:   decimal.Zero,
		MonthlyExpenses: decimal.Zero,
	}
	for _, tx := range transactions {
		if !tx.Recurring {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeIncome:
			flow.MonthlyIncome = flow.MonthlyIncome.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			flow.MonthlyExpenses = flow.MonthlyExpenses.Add(tx.Amount)
		}
	}
	flow.Net = flow.MonthlyIncome.Sub(flow.MonthlyExpenses)
	return flow
}

// AssetsByCategory groups asset values by category, in category display order,
// skipping empty categories
func AssetsByCategory(assets []domain.Asset) []domain.CategoryAmount {
	sums := make(map[domain.AssetCategory]decimal.Decimal)
	for _, a := range assets {
		sums[a.Category] = sums[a.Category].Add(a.Value)
	}

	result := make([]domain.CategoryAmount, 0, len(sums))
	for _, category := range domain.AssetCategories {
		if amount, ok := sums[category]; ok {
			result = append(result, domain.CategoryAmount{Category: string(category), Amount: amount})
		}
	}
	return result
}

// CalculateCreditUtilization reports overall and per-card utilization
func CalculateCreditUtilization(cards []domain.CreditCard, totals domain.Totals) domain.CreditUtilization {
	percent := domain.UtilizationPercent(totals.TotalCreditDebt, totals.TotalCreditLimit)
	utilization := domain.CreditUtilization{
		Percent: percent,
		Rating:  UtilizationRating(percent),
		Cards:   make([]domain.CardUtilization, 0, len(cards)),
	}
	for _, c := range cards {
		utilization.Cards = append(utilization.Cards, domain.CardUtilization{
			CardID:          c.ID,
			Name:            c.Name,
			CreditLimit:     c.CreditLimit,
			OutstandingDebt: c.OutstandingDebt,
			AvailableCredit: c.AvailableCredit(),
			Percent:         c.Utilization(),
		})
	}
	return utilization
}

// UtilizationRating classifies a utilization percentage
func UtilizationRating(percent decimal.Decimal) string {
	switch {
	case percent.LessThan(utilizationExcellentBelow):
		return domain.UtilizationExcellent
	case percent.LessThan(utilizationGoodBelow):
		return domain.UtilizationGood
	case percent.LessThan(utilizationFairBelow):
		return domain.UtilizationFair
	}
	return domain.UtilizationHigh
}
