package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://fortuna.app/errors/validation"
	ErrorTypeNotFound    = "https://fortuna.app/errors/not-found"
	ErrorTypeUnavailable = "https://fortuna.app/errors/unavailable"
	ErrorTypeInternal    = "https://fortuna.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnavailableError creates a service unavailable error response
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldErrors maps validation sentinels to the request field they concern
var fieldErrors = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameRequired, "name", "Name is required"},
	{domain.ErrNameTooLong, "name", "Name must be 255 characters or less"},
	{domain.ErrInvalidCategory, "category", "Category is not one of the known categories"},
	{domain.ErrInvalidAmount, "amount", "Must be a non-negative number"},
	{domain.ErrInvalidTransactionType, "type", "Type must be one of: income, expense"},
	{domain.ErrInvalidFrequency, "frequency", "Frequency must be one of: daily, weekly, monthly"},
	{domain.ErrInvalidDayOfMonth, "dayOfMonth", "Day must be between 1 and 31 (1 to 7 for weekly)"},
	{domain.ErrInvalidPaymentDay, "paymentDay", "Payment day must be between 1 and 31"},
	{domain.ErrInvalidAccountType, "accountType", "Account type must be one of: asset, liability, creditCard"},
	{domain.ErrInvalidStatus, "status", "Status must be one of: estimated, confirmed"},
	{domain.ErrInvalidTheme, "theme", "Theme must be one of: light, dark"},
	{domain.ErrInvalidCurrency, "currency", "Currency must be a known ISO 4217 code"},
	{domain.ErrAccountNotFound, "accountId", "Linked account does not exist"},
}

// notFoundErrors maps lookup sentinels to their response detail
var notFoundErrors = []struct {
	err    error
	detail string
}{
	{domain.ErrAssetNotFound, "Asset not found"},
	{domain.ErrLiabilityNotFound, "Liability not found"},
	{domain.ErrCreditCardNotFound, "Credit card not found"},
	{domain.ErrTransactionNotFound, "Transaction not found"},
	{domain.ErrNotFound, "Resource not found"},
}

// respondError translates a service error into a ProblemDetails response.
// Unknown errors are logged and reported as internal errors with the given detail.
func respondError(c echo.Context, err error, detail string) error {
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf.err) {
			return NewNotFoundError(c, nf.detail)
		}
	}
	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: fe.field, Message: fe.message},
			})
		}
	}
	switch {
	case errors.Is(err, domain.ErrMalformedImport):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, detail, nil)
	case errors.Is(err, domain.ErrBackupNotConfigured):
		return NewUnavailableError(c, "Backup storage is not configured")
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(detail)
	return NewInternalError(c, detail)
}
