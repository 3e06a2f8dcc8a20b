package service

import (
	"strings"
	"unicode/utf8"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// validateName trims and checks an entity name
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

func validateNonNegative(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	return nil
}

func validatePaymentDay(day int) error {
	if day < 1 || day > 31 {
		return domain.ErrInvalidPaymentDay
	}
	return nil
}

// validateDayOfMonth checks the due day against the frequency: 1-7 for weekly, 1-31 otherwise
func validateDayOfMonth(day *int, freq domain.Frequency) error {
	if day == nil {
		return nil
	}
	max := 31
	if freq == domain.FrequencyWeekly {
		max = 7
	}
	if *day < 1 || *day > max {
		return domain.ErrInvalidDayOfMonth
	}
	return nil
}

// validateTransaction checks a complete transaction after defaults and patches are applied
func validateTransaction(tx *domain.Transaction) error {
	name, err := validateName(tx.Name)
	if err != nil {
		return err
	}
	tx.Name = name
	tx.Category = strings.TrimSpace(tx.Category)

	if err := validateNonNegative(tx.Amount); err != nil {
		return err
	}
	if !tx.Type.IsValid() {
		return domain.ErrInvalidTransactionType
	}
	if !tx.Frequency.IsValid() {
		return domain.ErrInvalidFrequency
	}
	if !tx.Status.IsValid() {
		return domain.ErrInvalidStatus
	}
	if err := validateDayOfMonth(tx.DayOfMonth, tx.Frequency); err != nil {
		return err
	}
	if tx.AccountID != "" && !tx.AccountType.IsValid() {
		return domain.ErrInvalidAccountType
	}
	return nil
}
