package service

import (
	"testing"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settlementData(txType domain.TransactionType, accountID string, accountType domain.AccountType) *domain.FinanceData {
	data := domain.NewFinanceData()
	data.Assets = []domain.Asset{{ID: "asset-1", Name: "Checking", Value: dec("1000"), Category: domain.AssetCategoryCashAtBank}}
	data.Liabilities = []domain.Liability{{ID: "liability-1", Name: "Mortgage", Value: dec("200000"), Category: domain.LiabilityCategoryMortgage}}
	data.CreditCards = []domain.CreditCard{{ID: "card-1", Name: "Visa", CreditLimit: dec("2000"), OutstandingDebt: dec("100"), PaymentDay: 3}}
	data.Transactions = []domain.Transaction{{
		ID:          "tx-1",
		Name:        "Linked",
		Amount:      dec("50"),
		Type:        txType,
		Recurring:   true,
		DayOfMonth:  intPtr(1),
		AccountID:   accountID,
		AccountType: accountType,
		Status:      domain.TransactionStatusEstimated,
	}}
	return data
}

func TestSettle_AccountEffects(t *testing.T) {
	tests := []struct {
		name        string
		txType      domain.TransactionType
		accountID   string
		accountType domain.AccountType
		amount      string
		balance     func(d *domain.FinanceData) string
		expected    string
	}{
		{"asset income adds", domain.TransactionTypeIncome, "asset-1", domain.AccountTypeAsset, "200",
			func(d *domain.FinanceData) string { return d.Assets[0].Value.String() }, "1200"},
		{"asset expense subtracts", domain.TransactionTypeExpense, "asset-1", domain.AccountTypeAsset, "200",
			func(d *domain.FinanceData) string { return d.Assets[0].Value.String() }, "800"},
		{"liability expense grows debt", domain.TransactionTypeExpense, "liability-1", domain.AccountTypeLiability, "500",
			func(d *domain.FinanceData) string { return d.Liabilities[0].Value.String() }, "200500"},
		{"liability income shrinks debt", domain.TransactionTypeIncome, "liability-1", domain.AccountTypeLiability, "500",
			func(d *domain.FinanceData) string { return d.Liabilities[0].Value.String() }, "199500"},
		{"card expense grows debt", domain.TransactionTypeExpense, "card-1", domain.AccountTypeCreditCard, "150",
			func(d *domain.FinanceData) string { return d.CreditCards[0].OutstandingDebt.String() }, "250"},
		{"card payment shrinks debt", domain.TransactionTypeIncome, "card-1", domain.AccountTypeCreditCard, "60",
			func(d *domain.FinanceData) string { return d.CreditCards[0].OutstandingDebt.String() }, "40"},
		{"card overpayment floors at zero", domain.TransactionTypeIncome, "card-1", domain.AccountTypeCreditCard, "150",
			func(d *domain.FinanceData) string { return d.CreditCards[0].OutstandingDebt.String() }, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := settlementData(tt.txType, tt.accountID, tt.accountType)

			result, err := Settle(data, "tx-1", domain.ConfirmInput{Amount: dec(tt.amount)}, baseTime)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, tt.balance(data))
			require.NotNil(t, result.Account)
			assertDecimal(t, tt.expected, result.Account.Balance)
			assert.False(t, result.AccountMissing)
		})
	}
}

func TestSettle_RecordsConfirmation(t *testing.T) {
	data := settlementData(domain.TransactionTypeExpense, "", "")

	result, err := Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("47.25")}, baseTime)
	require.NoError(t, err)

	tx := data.FindTransaction("tx-1")
	assert.Equal(t, domain.TransactionStatusConfirmed, tx.Status)
	require.NotNil(t, tx.LastConfirmedDate)
	assert.Equal(t, baseTime, *tx.LastConfirmedDate)
	require.NotNil(t, tx.LastConfirmedAmount)
	assertDecimal(t, "47.25", *tx.LastConfirmedAmount)
	// the estimate is kept for the next period
	assertDecimal(t, "50", tx.Amount)

	assert.Nil(t, result.Account)
	assert.False(t, result.AccountMissing)
	assertDecimal(t, "1000", data.Assets[0].Value)
}

func TestSettle_MissingAccountIsSoft(t *testing.T) {
	data := settlementData(domain.TransactionTypeIncome, "asset-1", domain.AccountTypeAsset)
	data.Assets = []domain.Asset{}

	result, err := Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("200")}, baseTime)
	require.NoError(t, err)

	assert.True(t, result.AccountMissing)
	assert.Nil(t, result.Account)
	assert.Equal(t, domain.TransactionStatusConfirmed, result.Transaction.Status)
	assertDecimal(t, "200000", data.Liabilities[0].Value)
	assertDecimal(t, "100", data.CreditCards[0].OutstandingDebt)
}

func TestSettle_AmendAccount(t *testing.T) {
	data := settlementData(domain.TransactionTypeExpense, "", "")
	accountType := domain.AccountTypeCreditCard

	result, err := Settle(data, "tx-1", domain.ConfirmInput{
		Amount:      dec("30"),
		AccountID:   strPtr("card-1"),
		AccountType: &accountType,
	}, baseTime)
	require.NoError(t, err)

	assert.Equal(t, "card-1", result.Transaction.AccountID)
	assert.Equal(t, domain.CreditCardCategory, result.Transaction.Category)
	assertDecimal(t, "130", data.CreditCards[0].OutstandingDebt)
}

func TestSettle_AmendClearsAccount(t *testing.T) {
	data := settlementData(domain.TransactionTypeIncome, "asset-1", domain.AccountTypeAsset)

	result, err := Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("30"), AccountID: strPtr("")}, baseTime)
	require.NoError(t, err)

	assert.False(t, result.Transaction.HasAccountLink())
	assertDecimal(t, "1000", data.Assets[0].Value)
}

func TestSettle_Errors(t *testing.T) {
	data := settlementData(domain.TransactionTypeIncome, "asset-1", domain.AccountTypeAsset)

	_, err := Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("-1")}, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = Settle(data, "missing", domain.ConfirmInput{Amount: dec("1")}, baseTime)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("1"), AccountID: strPtr("asset-1")}, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	cardType := domain.AccountTypeCreditCard
	_, err = Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("1"), AccountID: strPtr("card-9"), AccountType: &cardType}, baseTime)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = Settle(data, "tx-1", domain.ConfirmInput{Amount: dec("1"), AccountType: &cardType}, baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// nothing was confirmed or relinked by the failed attempts
	assert.Equal(t, "asset-1", data.Transactions[0].AccountID)
	assert.Equal(t, domain.AccountTypeAsset, data.Transactions[0].AccountType)
	assert.Equal(t, domain.TransactionStatusEstimated, data.Transactions[0].Status)
}
