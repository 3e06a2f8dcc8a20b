package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/util"
)

// Due labels
const (
	DueLabelOverdue  = "Overdue"
	DueLabelToday    = "Due today"
	DueLabelTomorrow = "Due tomorrow"
)

// DueTransactions returns the recurring transactions waiting for confirmation as of
// today, soonest first.
func DueTransactions(data *domain.FinanceData, today time.Time) []domain.DueTransaction {
	due := make([]domain.DueTransaction, 0)
	for _, tx := range data.Transactions {
		item, ok := EvaluateDue(tx, today)
		if !ok {
			continue
		}
		if tx.HasAccountLink() {
			if ref, found := data.FindAccount(tx.AccountID, tx.AccountType); found {
				item.AccountName = ref.Name
			}
		}
		due = append(due, item)
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].DueDate.Equal(due[j].DueDate) {
			return due[i].DueDate.Before(due[j].DueDate)
		}
		return due[i].Transaction.Name < due[j].Transaction.Name
	})
	return due
}

// EvaluateDue decides whether a single transaction is due as of today.
//
// Each frequency has an occurrence period: the calendar month for monthly, the
// Monday-based week for weekly (dayOfMonth 1 is Monday, 7 is Sunday) and the calendar day
// for daily. A transaction confirmed in the current period is done. Otherwise the next
// occurrence is the one in the period following its last confirmation, or in the current
// period when it was never confirmed. It is due when that occurrence is at most a week
// ahead and no more than 30 days overdue. An occurrence that rolled off the window is
// skipped in steps of LapsedSkipPeriods periods, so a missed series shows up again later.
func EvaluateDue(tx domain.Transaction, today time.Time) (domain.DueTransaction, bool) {
	if !tx.Recurring || tx.DayOfMonth == nil {
		return domain.DueTransaction{}, false
	}

	freq := tx.Frequency.Normalized()
	current := periodStart(freq, today)

	start := current
	if tx.LastConfirmedDate != nil {
		lastStart := periodStart(freq, tx.LastConfirmedDate.In(today.Location()))
		if !lastStart.Before(current) {
			return domain.DueTransaction{}, false
		}
		start = nextPeriodStart(freq, lastStart)
	}

	dueDate := occurrence(freq, *tx.DayOfMonth, start)
	days := DaysUntil(dueDate, today)
	for days < -domain.DueWindowOverdueDays {
		for i := 0; i < domain.LapsedSkipPeriods; i++ {
			start = nextPeriodStart(freq, start)
		}
		dueDate = occurrence(freq, *tx.DayOfMonth, start)
		days = DaysUntil(dueDate, today)
	}
	if days > domain.DueWindowAheadDays {
		return domain.DueTransaction{}, false
	}

	return domain.DueTransaction{
		Transaction:  tx,
		DueDate:      dueDate,
		DaysUntilDue: days,
		Label:        DueLabel(days),
		Overdue:      days < 0,
	}, true
}

// DaysUntil returns the whole days from today to due, rounded up
func DaysUntil(due, today time.Time) int {
	return int(math.Ceil(due.Sub(today).Hours() / 24))
}

// DueLabel describes how far away a due date is
func DueLabel(daysUntilDue int) string {
	switch {
	case daysUntilDue < 0:
		return DueLabelOverdue
	case daysUntilDue == 0:
		return DueLabelToday
	case daysUntilDue == 1:
		return DueLabelTomorrow
	}
	return fmt.Sprintf("Due in %d days", daysUntilDue)
}

func periodStart(freq domain.Frequency, t time.Time) time.Time {
	switch freq {
	case domain.FrequencyDaily:
		return util.StartOfDay(t)
	case domain.FrequencyWeekly:
		return util.StartOfWeek(t)
	}
	return util.StartOfMonth(t)
}

func nextPeriodStart(freq domain.Frequency, start time.Time) time.Time {
	switch freq {
	case domain.FrequencyDaily:
		return start.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return start.AddDate(0, 0, 7)
	}
	year, month := util.NextMonth(start.Year(), int(start.Month()))
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, start.Location())
}

func occurrence(freq domain.Frequency, day int, start time.Time) time.Time {
	switch freq {
	case domain.FrequencyDaily:
		return start
	case domain.FrequencyWeekly:
		if day < 1 {
			day = 1
		}
		if day > 7 {
			day = 7
		}
		return start.AddDate(0, 0, day-1)
	}
	return util.CalculateActualDate(start.Year(), start.Month(), day, start.Location())
}
