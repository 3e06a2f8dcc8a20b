package domain

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid accepts the empty frequency, which is treated as monthly
func (f Frequency) IsValid() bool {
	switch f {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Normalized maps the empty frequency to monthly
func (f Frequency) Normalized() Frequency {
	if f == "" {
		return FrequencyMonthly
	}
	return f
}

// Due window bounds, in days relative to today
const (
	DueWindowAheadDays   = 7
	DueWindowOverdueDays = 30
)

// LapsedSkipPeriods is how many periods a missed occurrence that rolled off the due
// window is pushed forward before the series comes back.
const LapsedSkipPeriods = 3

// DueTransaction is a recurring transaction waiting for confirmation
type DueTransaction struct {
	Transaction  Transaction `json:"transaction"`
	DueDate      time.Time   `json:"dueDate"`
	DaysUntilDue int         `json:"daysUntilDue"`
	Label        string      `json:"label"`
	Overdue      bool        `json:"overdue"`
	AccountName  string      `json:"accountName,omitempty"`
}
