package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/repository/storage"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/dafibh/fortuna/networth/internal/util"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type summaryCmd struct {
	asJSON bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print net worth, totals and credit utilization" }
func (*summaryCmd) Usage() string {
	return `networth summary [-json]

  Prints the dashboard figures computed from the stored data.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "Print the summary as JSON.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	summary, err := e.dashboard.GetSummary(ctx)
	if err != nil {
		return fail(err)
	}
	if c.asJSON {
		if err := printJSON(summary); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	cur := summary.Currency
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Net worth\t%s\n", summary.FormattedNetWorth)
	fmt.Fprintf(w, "Assets\t%s\n", util.FormatMoney(summary.Totals.TotalAssets, cur))
	fmt.Fprintf(w, "Liabilities\t%s\n", util.FormatMoney(summary.Totals.TotalLiabilities, cur))
	fmt.Fprintf(w, "Credit card debt\t%s\n", util.FormatMoney(summary.Totals.TotalCreditDebt, cur))
	fmt.Fprintf(w, "Available credit\t%s\n", util.FormatMoney(summary.Totals.AvailableCredit, cur))
	fmt.Fprintf(w, "Monthly cash flow\t%s\n", util.FormatMoney(summary.CashFlow.Net, cur))
	fmt.Fprintf(w, "Credit utilization\t%s%% (%s)\n", summary.CreditUtilization.Percent.StringFixed(1), summary.CreditUtilization.Rating)
	fmt.Fprintf(w, "Due transactions\t%d\n", summary.DueCount)
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type dueCmd struct{}

func (*dueCmd) Name() string     { return "due" }
func (*dueCmd) Synopsis() string { return "list recurring transactions waiting for confirmation" }
func (*dueCmd) Usage() string {
	return `networth due

  Lists recurring transactions due within the next week or overdue by at most 30 days.
`
}
func (*dueCmd) SetFlags(*flag.FlagSet) {}

func (c *dueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	due, err := e.transactions.DueTransactions(ctx)
	if err != nil {
		return fail(err)
	}
	if len(due) == 0 {
		fmt.Fprintln(out, "Nothing due.")
		return subcommands.ExitSuccess
	}

	data, err := e.store.Read(ctx)
	if err != nil {
		return fail(err)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tType\tAmount\tDue\tStatus\tAccount")
	for _, d := range due {
		tx := d.Transaction
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Name, tx.Type,
			util.FormatMoney(tx.Amount, data.Settings.Currency),
			d.DueDate.Format("2006-01-02"), d.Label, d.AccountName)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type confirmCmd struct {
	amount      string
	accountID   string
	accountType string
}

func (*confirmCmd) Name() string     { return "confirm" }
func (*confirmCmd) Synopsis() string { return "confirm a transaction and apply it to its account" }
func (*confirmCmd) Usage() string {
	return `networth confirm [-amount <amount>] [-account <id> -account-type <type>] <transaction-id>

  Confirms the transaction. Without -amount the estimated amount is used.
`
}

func (c *confirmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "The actual amount. Defaults to the estimate.")
	f.StringVar(&c.accountID, "account", "", "Link the transaction to this account before confirming.")
	f.StringVar(&c.accountType, "account-type", "", "Type of -account (asset, liability, creditCard).")
}

func (c *confirmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "confirm takes exactly one transaction id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	var amount *decimal.Decimal
	if c.amount != "" {
		parsed, err := decimal.NewFromString(c.amount)
		if err != nil {
			return fail(fmt.Errorf("invalid amount %q: %w", c.amount, err))
		}
		amount = &parsed
	}
	if c.accountID != "" && c.accountType == "" {
		fmt.Fprintln(os.Stderr, "-account requires -account-type")
		return subcommands.ExitUsageError
	}

	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	var result *domain.SettlementResult
	if amount == nil && c.accountID == "" {
		result, err = e.transactions.QuickConfirmTransaction(ctx, id)
	} else {
		if amount == nil {
			tx, err := e.transactions.GetTransaction(ctx, id)
			if err != nil {
				return fail(err)
			}
			amount = &tx.Amount
		}
		input := domain.ConfirmInput{Amount: *amount}
		if c.accountID != "" {
			accountType := domain.AccountType(c.accountType)
			input.AccountID = &c.accountID
			input.AccountType = &accountType
		}
		result, err = e.transactions.ConfirmTransaction(ctx, id, input)
	}
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(out, "Confirmed %s at %s\n", result.Transaction.Name, result.Transaction.EffectiveAmount().String())
	switch {
	case result.Account != nil:
		fmt.Fprintf(out, "%s balance is now %s\n", result.Account.Name, result.Account.Balance.String())
	case result.AccountMissing:
		fmt.Fprintln(out, "Linked account no longer exists; no balance was changed")
	}
	return subcommands.ExitSuccess
}

type historyCmd struct {
	timeframe string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print the net worth history" }
func (*historyCmd) Usage() string {
	return `networth history [-t 1D|1M|1Y|ALL]

  Prints the recorded net worth snapshots inside the timeframe.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "t", string(domain.TimeframeAll), "Timeframe (1D, 1M, 1Y, ALL).")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	snapshots, err := e.history.GetHistory(ctx, domain.Timeframe(c.timeframe))
	if err != nil {
		return fail(fmt.Errorf("history %q: %w", c.timeframe, err))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Date\tNet worth\tAssets\tLiabilities\tCredit debt\t")
	for _, s := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			s.Date.Format("2006-01-02 15:04"),
			s.NetWorth.StringFixed(2), s.TotalAssets.StringFixed(2),
			s.TotalLiabilities.StringFixed(2), s.TotalCreditDebt.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the data set in the export format" }
func (*exportCmd) Usage() string {
	return `networth export [-o <file>]

  Writes the whole data set as indented JSON to stdout or to a file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	export, err := e.data.Export(ctx)
	if err != nil {
		return fail(err)
	}

	if c.output == "" {
		if _, err := out.Write(append(export.Content, '\n')); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, export.Content, 0644); err != nil {
		return fail(err)
	}
	fmt.Fprintf(out, "Exported to %s\n", c.output)
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the data set with an export file" }
func (*importCmd) Usage() string {
	return `networth import <file>

  Replaces all stored data with the content of an export file.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "import takes exactly one file")
		return subcommands.ExitUsageError
	}
	raw, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return fail(err)
	}

	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	summary, err := e.data.Import(ctx, raw)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(out, "Imported %d assets, %d liabilities, %d credit cards, %d transactions, %d snapshots\n",
		summary.Assets, summary.Liabilities, summary.CreditCards, summary.Transactions, summary.Snapshots)
	return subcommands.ExitSuccess
}

type backupCmd struct{}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "upload an export to the configured S3 bucket" }
func (*backupCmd) Usage() string {
	return `networth backup

  Uploads an export to S3_BUCKET.
`
}
func (*backupCmd) SetFlags(*flag.FlagSet) {}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	if !e.cfg.S3.Enabled() {
		return fail(domain.ErrBackupNotConfigured)
	}
	repo, err := storage.NewS3BackupRepository(ctx, e.cfg.S3)
	if err != nil {
		return fail(err)
	}

	result, err := service.NewBackupService(e.data, e.store, repo).Backup(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(out, "Backed up %d bytes to %s\n", result.Size, result.Location)
	return subcommands.ExitSuccess
}
