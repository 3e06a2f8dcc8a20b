package service

import (
	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateTotals derives the aggregate metrics from the raw collections.
// Net worth always subtracts liabilities and card debt; available credit is added
// only when the settings include it.
func CalculateTotals(data *domain.FinanceData) domain.Totals {
	totals := domain.Totals{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalCreditLimit: decimal.Zero,
		TotalCreditDebt:  decimal.Zero,
	}

	for _, a := range data.Assets {
		totals.TotalAssets = totals.TotalAssets.Add(a.Value)
	}
	for _, l := range data.Liabilities {
		totals.TotalLiabilities = totals.TotalLiabilities.Add(l.Value)
	}
	for _, c := range data.CreditCards {
		totals.TotalCreditLimit = totals.TotalCreditLimit.Add(c.CreditLimit)
		totals.TotalCreditDebt = totals.TotalCreditDebt.Add(c.OutstandingDebt)
	}
	totals.AvailableCredit = totals.TotalCreditLimit.Sub(totals.TotalCreditDebt)
	totals.NetWorth = NetWorth(totals.TotalAssets, totals.TotalLiabilities, totals.TotalCreditDebt, totals.AvailableCredit, data.Settings.IncludeCreditInNetWorth)

	return totals
}

// NetWorth applies the inclusion policy to already aggregated figures
func NetWorth(assets, liabilities, creditDebt, availableCredit decimal.Decimal, includeCredit bool) decimal.Decimal {
	netWorth := assets.Sub(liabilities).Sub(creditDebt)
	if includeCredit {
		netWorth = netWorth.Add(availableCredit)
	}
	return netWorth
}
