package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
)

// NewSnapshot captures totals at the given instant
func NewSnapshot(totals domain.Totals, at time.Time) domain.NetWorthSnapshot {
	return domain.NetWorthSnapshot{
		Date:             at,
		NetWorth:         totals.NetWorth,
		TotalAssets:      totals.TotalAssets,
		TotalLiabilities: totals.TotalLiabilities,
		TotalCreditDebt:  totals.TotalCreditDebt,
		AvailableCredit:  totals.AvailableCredit,
	}
}

// ShouldAppendSnapshot reports whether candidate is worth recording after last.
// Small movements inside the coalescing interval are dropped.
func ShouldAppendSnapshot(last domain.NetWorthSnapshot, hasLast bool, candidate domain.NetWorthSnapshot) bool {
	if !hasLast {
		return true
	}
	if candidate.NetWorth.Sub(last.NetWorth).Abs().GreaterThan(domain.SnapshotNetWorthTolerance) {
		return true
	}
	return candidate.Date.Sub(last.Date) > domain.SnapshotMaxInterval
}

// MaybeAppendSnapshot compares the totals of next against the latest entry of prev and
// appends a snapshot to next when the change is worth recording. History never goes
// backwards in time: a clock behind the last entry is clamped to it.
func MaybeAppendSnapshot(prev, next *domain.FinanceData, now time.Time) (domain.NetWorthSnapshot, bool) {
	last, hasLast := prev.LastSnapshot()
	if hasLast && now.Before(last.Date) {
		now = last.Date
	}

	candidate := NewSnapshot(CalculateTotals(next), now)
	if !ShouldAppendSnapshot(last, hasLast, candidate) {
		return domain.NetWorthSnapshot{}, false
	}

	next.NetWorthHistory = append(next.NetWorthHistory, candidate)
	return candidate, true
}

// FilterHistory returns the entries inside the timeframe, oldest first, with net worth
// restated under the current inclusion policy.
func FilterHistory(history []domain.NetWorthSnapshot, timeframe domain.Timeframe, now time.Time, includeCredit bool) []domain.NetWorthSnapshot {
	cutoff := timeframe.Cutoff(now)
	filtered := make([]domain.NetWorthSnapshot, 0, len(history))
	for _, s := range history {
		if s.Date.Before(cutoff) {
			continue
		}
		s.NetWorth = NetWorth(s.TotalAssets, s.TotalLiabilities, s.TotalCreditDebt, s.AvailableCredit, includeCredit)
		filtered = append(filtered, s)
	}
	return filtered
}

// HistoryService serves the net-worth time series
type HistoryService struct {
	store *Store
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(store *Store) *HistoryService {
	return &HistoryService{store: store}
}

// GetHistory returns the snapshots inside the timeframe
func (s *HistoryService) GetHistory(ctx context.Context, timeframe domain.Timeframe) ([]domain.NetWorthSnapshot, error) {
	if timeframe == "" {
		timeframe = domain.TimeframeAll
	}
	if !timeframe.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return FilterHistory(data.NetWorthHistory, timeframe, s.store.Now(), data.Settings.IncludeCreditInNetWorth), nil
}
