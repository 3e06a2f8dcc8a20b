package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiabilityService_MutationsRecordSnapshots(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := NewLiabilityService(env.store)
	ctx := context.Background()

	loan, err := svc.CreateLiability(ctx, CreateLiabilityInput{
		Name:     "Car",
		Value:    dec("4000"),
		Category: domain.LiabilityCategoryCarLoan,
	})
	require.NoError(t, err)
	require.Len(t, env.read(t).NetWorthHistory, 1)

	// paying the loan down records a new entry
	env.clock.Advance(time.Minute)
	updated, err := svc.UpdateLiability(ctx, loan.ID, domain.LiabilityPatch{Value: decPtr("3500")})
	require.NoError(t, err)
	assertDecimal(t, "3500", updated.Value)
	history := env.read(t).NetWorthHistory
	require.Len(t, history, 2)
	assertDecimal(t, "-3500", history[1].NetWorth)
	assertDecimal(t, "3500", history[1].TotalLiabilities)

	// a description edit within the hour is coalesced
	env.clock.Advance(time.Minute)
	_, err = svc.UpdateLiability(ctx, loan.ID, domain.LiabilityPatch{Description: strPtr("5 years left")})
	require.NoError(t, err)
	assert.Len(t, env.read(t).NetWorthHistory, 2)

	// the same edit after more than an hour is recorded
	env.clock.Advance(2 * time.Hour)
	_, err = svc.UpdateLiability(ctx, loan.ID, domain.LiabilityPatch{Description: strPtr("4 years left")})
	require.NoError(t, err)
	history = env.read(t).NetWorthHistory
	require.Len(t, history, 3)
	assertDecimal(t, "-3500", history[2].NetWorth)

	env.clock.Advance(time.Minute)
	require.NoError(t, svc.DeleteLiability(ctx, loan.ID))
	history = env.read(t).NetWorthHistory
	require.Len(t, history, 4)
	assertDecimal(t, "0", history[3].NetWorth)
	assert.Contains(t, env.publisher.Types(), "liability.updated")
	assert.Contains(t, env.publisher.Types(), "liability.deleted")
}

func TestLiabilityService_UpdateValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := NewLiabilityService(env.store)
	ctx := context.Background()

	loan, err := svc.CreateLiability(ctx, CreateLiabilityInput{Name: "Mortgage", Value: dec("1000"), Category: domain.LiabilityCategoryMortgage})
	require.NoError(t, err)

	category := domain.LiabilityCategory("IOU")
	_, err = svc.UpdateLiability(ctx, loan.ID, domain.LiabilityPatch{Category: &category})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	stored, err := svc.GetLiability(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LiabilityCategoryMortgage, stored.Category)

	_, err = svc.UpdateLiability(ctx, "missing", domain.LiabilityPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrLiabilityNotFound)
	assert.Contains(t, env.publisher.Types(), "liability.failed")
	assert.Len(t, env.read(t).NetWorthHistory, 1)
}
