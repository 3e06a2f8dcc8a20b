package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetWorthSnapshot is a point-in-time copy of the aggregate metrics. Snapshots are
// appended to the history and never edited afterwards.
type NetWorthSnapshot struct {
	Date             time.Time       `json:"date"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalCreditDebt  decimal.Decimal `json:"totalCreditDebt"`
	AvailableCredit  decimal.Decimal `json:"availableCredit"`
}

// Snapshot coalescing rules
var (
	SnapshotNetWorthTolerance = decimal.NewFromFloat(0.01)
	SnapshotMaxInterval       = time.Hour
)

// Timeframe selects a trailing window of the net-worth history
type Timeframe string

const (
	TimeframeDay   Timeframe = "1D"
	TimeframeMonth Timeframe = "1M"
	TimeframeYear  Timeframe = "1Y"
	TimeframeAll   Timeframe = "ALL"
)

func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeDay, TimeframeMonth, TimeframeYear, TimeframeAll:
		return true
	}
	return false
}

// Cutoff returns the earliest instant included by the timeframe. ALL returns the zero time.
func (t Timeframe) Cutoff(now time.Time) time.Time {
	switch t {
	case TimeframeDay:
		return now.AddDate(0, 0, -1)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	case TimeframeYear:
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}
