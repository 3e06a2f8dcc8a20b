package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Monday 10 June 2024, noon
var baseTime = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store     *Store
	repo      *testutil.MockFinanceRepository
	clock     *testutil.FixedClock
	publisher *testutil.RecordingPublisher
}

func newTestEnv(t *testing.T, seed *domain.FinanceData) *testEnv {
	t.Helper()

	repo := testutil.NewMockFinanceRepository()
	if seed != nil {
		repo = testutil.NewMockFinanceRepositoryWith(seed)
	}
	clock := testutil.NewFixedClock(baseTime)
	publisher := testutil.NewRecordingPublisher()

	store := NewStore(repo, clock, zerolog.Nop())
	store.SetEventPublisher(publisher)
	require.NoError(t, store.Load(context.Background()))

	return &testEnv{store: store, repo: repo, clock: clock, publisher: publisher}
}

func (e *testEnv) read(t *testing.T) *domain.FinanceData {
	t.Helper()
	data, err := e.store.Read(context.Background())
	require.NoError(t, err)
	return data
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
