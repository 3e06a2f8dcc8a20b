package domain

import "errors"

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrLiabilityNotFound      = errors.New("liability not found")
	ErrCreditCardNotFound     = errors.New("credit card not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrAccountNotFound        = errors.New("linked account not found")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidFrequency       = errors.New("invalid frequency")
	ErrInvalidDayOfMonth      = errors.New("invalid day of month")
	ErrInvalidPaymentDay      = errors.New("invalid payment day")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidTheme           = errors.New("invalid theme")
	ErrInvalidCurrency        = errors.New("invalid currency")
	ErrMalformedImport        = errors.New("malformed import")
	ErrBackupNotConfigured    = errors.New("backup storage is not configured")
)

// Validation constants
const (
	MaxNameLength = 255
)
