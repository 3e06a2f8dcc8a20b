package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Name        string                   `json:"name"`
	Amount      decimal.Decimal          `json:"amount"`
	Type        domain.TransactionType   `json:"type"`
	Category    string                   `json:"category,omitempty"`
	Recurring   bool                     `json:"recurring"`
	Frequency   domain.Frequency         `json:"frequency,omitempty"`
	AccountID   string                   `json:"accountId,omitempty"`
	AccountType domain.AccountType       `json:"accountType,omitempty"`
	DayOfMonth  *int                     `json:"dayOfMonth,omitempty"`
	Status      domain.TransactionStatus `json:"status,omitempty"`
}

// ConfirmTransactionRequest represents the confirm request body. Setting accountId
// amends the account link before the amount is applied; an empty accountId unlinks.
type ConfirmTransactionRequest struct {
	Amount      *decimal.Decimal    `json:"amount"`
	AccountID   *string             `json:"accountId,omitempty"`
	AccountType *domain.AccountType `json:"accountType,omitempty"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tx, err := h.transactionService.CreateTransaction(c.Request().Context(), service.CreateTransactionInput{
		Name:        req.Name,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Recurring:   req.Recurring,
		Frequency:   req.Frequency,
		AccountID:   req.AccountID,
		AccountType: req.AccountType,
		DayOfMonth:  req.DayOfMonth,
		Status:      req.Status,
	})
	if err != nil {
		return respondError(c, err, "Failed to create transaction")
	}

	log.Info().Str("transaction_id", tx.ID).Str("name", tx.Name).Str("type", string(tx.Type)).Msg("Transaction created")
	return c.JSON(http.StatusCreated, tx)
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	transactions, err := h.transactionService.GetTransactions(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get transactions")
	}
	return c.JSON(http.StatusOK, transactions)
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	tx, err := h.transactionService.GetTransaction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get transaction")
	}
	return c.JSON(http.StatusOK, tx)
}

// UpdateTransaction handles PATCH /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	var patch domain.TransactionPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Failed to update transaction")
	}

	log.Info().Str("transaction_id", tx.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")
	if err := h.transactionService.DeleteTransaction(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete transaction")
	}

	log.Info().Str("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// ConfirmTransaction handles POST /api/v1/transactions/:id/confirm
func (h *TransactionHandler) ConfirmTransaction(c echo.Context) error {
	var req ConfirmTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Amount == nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount is required"},
		})
	}

	result, err := h.transactionService.ConfirmTransaction(c.Request().Context(), c.Param("id"), domain.ConfirmInput{
		Amount:      *req.Amount,
		AccountID:   req.AccountID,
		AccountType: req.AccountType,
	})
	if err != nil {
		return respondError(c, err, "Failed to confirm transaction")
	}

	logConfirmation(result)
	return c.JSON(http.StatusOK, result)
}

// QuickConfirmTransaction handles POST /api/v1/transactions/:id/quick-confirm
func (h *TransactionHandler) QuickConfirmTransaction(c echo.Context) error {
	result, err := h.transactionService.QuickConfirmTransaction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to confirm transaction")
	}

	logConfirmation(result)
	return c.JSON(http.StatusOK, result)
}

func logConfirmation(result *domain.SettlementResult) {
	event := log.Info().
		Str("transaction_id", result.Transaction.ID).
		Str("amount", result.Transaction.EffectiveAmount().String()).
		Bool("snapshot_appended", result.SnapshotAppended)
	if result.Account != nil {
		event = event.Str("account_id", result.Account.ID).Str("balance", result.Account.Balance.String())
	}
	if result.AccountMissing {
		log.Warn().Str("transaction_id", result.Transaction.ID).Msg("Linked account missing, balance left unchanged")
	}
	event.Msg("Transaction confirmed")
}

// GetDueTransactions handles GET /api/v1/transactions/due
func (h *TransactionHandler) GetDueTransactions(c echo.Context) error {
	due, err := h.transactionService.DueTransactions(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get due transactions")
	}
	return c.JSON(http.StatusOK, due)
}

// GetSummary handles GET /api/v1/transactions/summary
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	summary, err := h.transactionService.GetSummary(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get transaction summary")
	}
	return c.JSON(http.StatusOK, summary)
}
