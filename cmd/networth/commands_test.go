package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/repository/file"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDataFile points the tool at a temporary data file seeded with data
func setupDataFile(t *testing.T, data *domain.FinanceData) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "finance-data.json")
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_FILE", path)
	t.Setenv("BACKUP_SCHEDULE", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("LOCATION", "UTC")

	if data != nil {
		repo, err := file.NewFinanceRepository(path)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), data))
	}
	return path
}

func run(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	var buf bytes.Buffer
	out = &buf
	t.Cleanup(func() { out = os.Stdout })

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(context.Background(), fs), buf.String()
}

func seeded() *domain.FinanceData {
	data := domain.NewFinanceData()
	data.Assets = []domain.Asset{{
		ID:        "asset-1",
		Name:      "Savings",
		Value:     decimal.NewFromInt(1000),
		Category:  domain.AssetCategorySavings,
		CreatedAt: time.Now().Add(-time.Hour),
	}}
	day := time.Now().UTC().Day()
	data.Transactions = []domain.Transaction{{
		ID:          "tx-1",
		Name:        "Paycheck",
		Amount:      decimal.NewFromInt(300),
		Type:        domain.TransactionTypeIncome,
		Category:    string(domain.AssetCategorySavings),
		Recurring:   true,
		Frequency:   domain.FrequencyDaily,
		AccountID:   "asset-1",
		AccountType: domain.AccountTypeAsset,
		DayOfMonth:  &day,
		Status:      domain.TransactionStatusEstimated,
		CreatedAt:   time.Now().Add(-time.Hour),
	}}
	return data
}

func TestSummaryCmd(t *testing.T) {
	setupDataFile(t, seeded())

	status, output := run(t, &summaryCmd{})
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, output, "Net worth")
	assert.Contains(t, output, "$1,000.00")
}

func TestSummaryCmd_JSON(t *testing.T) {
	setupDataFile(t, seeded())

	status, output := run(t, &summaryCmd{}, "-json")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, output, `"formattedNetWorth"`)
}

func TestConfirmCmd_UpdatesFile(t *testing.T) {
	path := setupDataFile(t, seeded())

	status, output := run(t, &confirmCmd{}, "-amount", "250", "tx-1")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, output, "Savings balance is now 1250")

	repo, err := file.NewFinanceRepository(path)
	require.NoError(t, err)
	data, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, data.FindAsset("asset-1").Value.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, domain.TransactionStatusConfirmed, data.FindTransaction("tx-1").Status)
	assert.Len(t, data.NetWorthHistory, 1)
}

func TestConfirmCmd_Usage(t *testing.T) {
	setupDataFile(t, seeded())

	status, _ := run(t, &confirmCmd{})
	assert.Equal(t, subcommands.ExitUsageError, status)

	status, _ = run(t, &confirmCmd{}, "-amount", "abc", "tx-1")
	assert.Equal(t, subcommands.ExitFailure, status)

	status, _ = run(t, &confirmCmd{}, "missing")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestExportImportCmd(t *testing.T) {
	setupDataFile(t, seeded())
	exportPath := filepath.Join(t.TempDir(), "export.json")

	status, _ := run(t, &exportCmd{}, "-o", exportPath)
	require.Equal(t, subcommands.ExitSuccess, status)

	setupDataFile(t, nil)
	status, output := run(t, &importCmd{}, exportPath)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, output, "Imported 1 assets")

	status, output = run(t, &dueCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, output, "Paycheck")
}

func TestImportCmd_Malformed(t *testing.T) {
	setupDataFile(t, seeded())
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`["nope"]`), 0644))

	status, _ := run(t, &importCmd{}, bad)
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestHistoryCmd(t *testing.T) {
	setupDataFile(t, seeded())

	status, _ := run(t, &historyCmd{}, "-t", "1M")
	assert.Equal(t, subcommands.ExitSuccess, status)

	status, _ = run(t, &historyCmd{}, "-t", "2W")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestBackupCmd_NotConfigured(t *testing.T) {
	setupDataFile(t, seeded())

	status, _ := run(t, &backupCmd{})
	assert.Equal(t, subcommands.ExitFailure, status)
}
