package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionFixture struct {
	env          *testEnv
	assets       *AssetService
	cards        *CreditCardService
	transactions *TransactionService
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	env := newTestEnv(t, nil)
	return &transactionFixture{
		env:          env,
		assets:       NewAssetService(env.store),
		cards:        NewCreditCardService(env.store),
		transactions: NewTransactionService(env.store),
	}
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	asset, err := f.assets.CreateAsset(ctx, CreateAssetInput{Name: "Checking", Value: dec("1000"), Category: domain.AssetCategoryCashAtBank})
	require.NoError(t, err)
	historyBefore := len(f.env.read(t).NetWorthHistory)

	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{
		Name:        "Salary",
		Amount:      dec("3000"),
		Type:        domain.TransactionTypeIncome,
		Recurring:   true,
		Frequency:   domain.FrequencyMonthly,
		AccountID:   asset.ID,
		AccountType: domain.AccountTypeAsset,
		DayOfMonth:  intPtr(25),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusEstimated, tx.Status)
	assert.Equal(t, "Cash at Bank", tx.Category)
	// transactions never record net worth on their own
	assert.Len(t, f.env.read(t).NetWorthHistory, historyBefore)
}

func TestTransactionService_CreateTransaction_Validation(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	base := func() CreateTransactionInput {
		return CreateTransactionInput{Name: "Bill", Amount: dec("10"), Type: domain.TransactionTypeExpense}
	}

	tests := []struct {
		name     string
		mutate   func(in *CreateTransactionInput)
		expected error
	}{
		{"negative amount", func(in *CreateTransactionInput) { in.Amount = dec("-1") }, domain.ErrInvalidAmount},
		{"unknown type", func(in *CreateTransactionInput) { in.Type = "transfer" }, domain.ErrInvalidTransactionType},
		{"unknown frequency", func(in *CreateTransactionInput) { in.Frequency = "yearly" }, domain.ErrInvalidFrequency},
		{"day out of range", func(in *CreateTransactionInput) { in.DayOfMonth = intPtr(32) }, domain.ErrInvalidDayOfMonth},
		{"weekday out of range", func(in *CreateTransactionInput) {
			in.Frequency = domain.FrequencyWeekly
			in.DayOfMonth = intPtr(8)
		}, domain.ErrInvalidDayOfMonth},
		{"account without type", func(in *CreateTransactionInput) { in.AccountID = "x" }, domain.ErrInvalidAccountType},
		{"unknown account", func(in *CreateTransactionInput) {
			in.AccountID = "x"
			in.AccountType = domain.AccountTypeAsset
		}, domain.ErrAccountNotFound},
		{"missing name", func(in *CreateTransactionInput) { in.Name = "" }, domain.ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			_, err := f.transactions.CreateTransaction(ctx, in)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
	assert.Empty(t, f.env.read(t).Transactions)
}

func TestTransactionService_ConfirmLinkedIncome(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	asset, err := f.assets.CreateAsset(ctx, CreateAssetInput{Name: "Checking", Value: dec("1000"), Category: domain.AssetCategoryCashAtBank})
	require.NoError(t, err)
	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{
		Name: "Freelance", Amount: dec("250"), Type: domain.TransactionTypeIncome,
		AccountID: asset.ID, AccountType: domain.AccountTypeAsset,
	})
	require.NoError(t, err)

	f.env.clock.Advance(time.Minute)
	result, err := f.transactions.ConfirmTransaction(ctx, tx.ID, domain.ConfirmInput{Amount: dec("200")})
	require.NoError(t, err)

	require.NotNil(t, result.Account)
	assertDecimal(t, "1200", result.Account.Balance)
	assert.True(t, result.SnapshotAppended)

	data := f.env.read(t)
	assertDecimal(t, "1200", data.Assets[0].Value)
	require.Len(t, data.NetWorthHistory, 2)
	assertDecimal(t, "1200", data.NetWorthHistory[1].NetWorth)
	assert.Contains(t, f.env.publisher.Types(), "transaction.confirmed")
	assert.Contains(t, f.env.publisher.Types(), "asset.updated")
}

func TestTransactionService_QuickConfirmUsesEstimate(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	card, err := f.cards.CreateCreditCard(ctx, CreateCreditCardInput{Name: "Visa", CreditLimit: dec("1000"), OutstandingDebt: dec("100"), PaymentDay: 5})
	require.NoError(t, err)
	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{
		Name: "Streaming", Amount: dec("15"), Type: domain.TransactionTypeExpense,
		Recurring: true, DayOfMonth: intPtr(9),
		AccountID: card.ID, AccountType: domain.AccountTypeCreditCard,
	})
	require.NoError(t, err)

	result, err := f.transactions.QuickConfirmTransaction(ctx, tx.ID)
	require.NoError(t, err)

	assertDecimal(t, "15", *result.Transaction.LastConfirmedAmount)
	assertDecimal(t, "115", f.env.read(t).CreditCards[0].OutstandingDebt)
}

func TestTransactionService_ConfirmAfterAccountDeleted(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	asset, err := f.assets.CreateAsset(ctx, CreateAssetInput{Name: "Old bank", Value: dec("500"), Category: domain.AssetCategoryCashAtBank})
	require.NoError(t, err)
	other, err := f.assets.CreateAsset(ctx, CreateAssetInput{Name: "New bank", Value: dec("700"), Category: domain.AssetCategoryCashAtBank})
	require.NoError(t, err)
	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{
		Name: "Interest", Amount: dec("5"), Type: domain.TransactionTypeIncome,
		AccountID: asset.ID, AccountType: domain.AccountTypeAsset,
	})
	require.NoError(t, err)

	require.NoError(t, f.assets.DeleteAsset(ctx, asset.ID))
	historyBefore := len(f.env.read(t).NetWorthHistory)

	result, err := f.transactions.ConfirmTransaction(ctx, tx.ID, domain.ConfirmInput{Amount: dec("5")})
	require.NoError(t, err)

	assert.True(t, result.AccountMissing)
	assert.False(t, result.SnapshotAppended)
	data := f.env.read(t)
	require.Len(t, data.Assets, 1)
	assert.Equal(t, other.ID, data.Assets[0].ID)
	assertDecimal(t, "700", data.Assets[0].Value)
	assert.Len(t, data.NetWorthHistory, historyBefore)
	assert.Equal(t, domain.TransactionStatusConfirmed, data.Transactions[0].Status)
}

func TestTransactionService_UpdateKeepsConfirmation(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{Name: "Rent", Amount: dec("1200"), Type: domain.TransactionTypeExpense})
	require.NoError(t, err)
	_, err = f.transactions.QuickConfirmTransaction(ctx, tx.ID)
	require.NoError(t, err)

	updated, err := f.transactions.UpdateTransaction(ctx, tx.ID, domain.TransactionPatch{Amount: decPtr("1300")})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusConfirmed, updated.Status)
	assertDecimal(t, "1300", updated.Amount)
	assertDecimal(t, "1200", *updated.LastConfirmedAmount)
}

func TestTransactionService_UpdateLinksAccount(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	card, err := f.cards.CreateCreditCard(ctx, CreateCreditCardInput{Name: "Visa", CreditLimit: dec("1000"), PaymentDay: 5})
	require.NoError(t, err)
	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{Name: "Groceries", Amount: dec("80"), Type: domain.TransactionTypeExpense})
	require.NoError(t, err)

	accountType := domain.AccountTypeCreditCard
	updated, err := f.transactions.UpdateTransaction(ctx, tx.ID, domain.TransactionPatch{AccountID: &card.ID, AccountType: &accountType})
	require.NoError(t, err)
	assert.Equal(t, domain.CreditCardCategory, updated.Category)

	missing := "nope"
	_, err = f.transactions.UpdateTransaction(ctx, tx.ID, domain.TransactionPatch{AccountID: &missing})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransactionService_CancelDeletesWithoutAccountEffect(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	asset, err := f.assets.CreateAsset(ctx, CreateAssetInput{Name: "Checking", Value: dec("1000"), Category: domain.AssetCategoryCashAtBank})
	require.NoError(t, err)
	tx, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{
		Name: "Phone", Amount: dec("40"), Type: domain.TransactionTypeExpense,
		AccountID: asset.ID, AccountType: domain.AccountTypeAsset,
	})
	require.NoError(t, err)

	require.NoError(t, f.transactions.DeleteTransaction(ctx, tx.ID))

	data := f.env.read(t)
	assert.Empty(t, data.Transactions)
	assertDecimal(t, "1000", data.Assets[0].Value)
	assert.ErrorIs(t, f.transactions.DeleteTransaction(ctx, tx.ID), domain.ErrTransactionNotFound)
}

func TestTransactionService_DueTransactions(t *testing.T) {
	f := newTransactionFixture(t)
	ctx := context.Background()

	_, err := f.transactions.CreateTransaction(ctx, CreateTransactionInput{
		Name: "Rent", Amount: dec("1200"), Type: domain.TransactionTypeExpense,
		Recurring: true, DayOfMonth: intPtr(12),
	})
	require.NoError(t, err)

	due, err := f.transactions.NotifyDue(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Due in 2 days", due[0].Label)
	assert.Contains(t, f.env.publisher.Types(), "transaction.due")

	_, err = f.transactions.QuickConfirmTransaction(ctx, due[0].Transaction.ID)
	require.NoError(t, err)

	due, err = f.transactions.DueTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestSummarizeTransactions(t *testing.T) {
	confirmedAmount := dec("1100")
	transactions := []domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: dec("3000"), Recurring: true},
		{Type: domain.TransactionTypeExpense, Amount: dec("1200"), Recurring: true, Status: domain.TransactionStatusConfirmed, LastConfirmedAmount: &confirmedAmount},
		{Type: domain.TransactionTypeExpense, Amount: dec("50"), Status: domain.TransactionStatusConfirmed},
	}

	summary := SummarizeTransactions(transactions)

	assertDecimal(t, "3000", summary.TotalIncome)
	assertDecimal(t, "1250", summary.TotalExpenses)
	assertDecimal(t, "0", summary.ConfirmedIncome)
	assertDecimal(t, "1150", summary.ConfirmedExpenses)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 2, summary.RecurringCount)
}
