package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CreditCardHandler handles credit card HTTP requests
type CreditCardHandler struct {
	creditCardService *service.CreditCardService
}

// NewCreditCardHandler creates a new CreditCardHandler
func NewCreditCardHandler(creditCardService *service.CreditCardService) *CreditCardHandler {
	return &CreditCardHandler{creditCardService: creditCardService}
}

// CreateCreditCardRequest represents the create credit card request body
type CreateCreditCardRequest struct {
	Name            string          `json:"name"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	OutstandingDebt decimal.Decimal `json:"outstandingDebt"`
	APR             decimal.Decimal `json:"apr"`
	PaymentDay      int             `json:"paymentDay"`
}

// CreditCardResponse adds the derived figures to a stored card
type CreditCardResponse struct {
	domain.CreditCard
	AvailableCredit decimal.Decimal `json:"availableCredit"`
	Utilization     decimal.Decimal `json:"utilization"`
}

func toCreditCardResponse(card domain.CreditCard) CreditCardResponse {
	return CreditCardResponse{
		CreditCard:      card,
		AvailableCredit: card.AvailableCredit(),
		Utilization:     card.Utilization().Round(2),
	}
}

// CreateCreditCard handles POST /api/v1/credit-cards
func (h *CreditCardHandler) CreateCreditCard(c echo.Context) error {
	var req CreateCreditCardRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	card, err := h.creditCardService.CreateCreditCard(c.Request().Context(), service.CreateCreditCardInput{
		Name:            req.Name,
		CreditLimit:     req.CreditLimit,
		OutstandingDebt: req.OutstandingDebt,
		APR:             req.APR,
		PaymentDay:      req.PaymentDay,
	})
	if err != nil {
		return respondError(c, err, "Failed to create credit card")
	}

	log.Info().Str("credit_card_id", card.ID).Str("name", card.Name).Msg("Credit card created")
	return c.JSON(http.StatusCreated, toCreditCardResponse(*card))
}

// GetCreditCards handles GET /api/v1/credit-cards
func (h *CreditCardHandler) GetCreditCards(c echo.Context) error {
	cards, err := h.creditCardService.GetCreditCards(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get credit cards")
	}

	response := make([]CreditCardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCreditCardResponse(card)
	}
	return c.JSON(http.StatusOK, response)
}

// GetCreditCard handles GET /api/v1/credit-cards/:id
func (h *CreditCardHandler) GetCreditCard(c echo.Context) error {
	card, err := h.creditCardService.GetCreditCard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get credit card")
	}
	return c.JSON(http.StatusOK, toCreditCardResponse(*card))
}

// UpdateCreditCard handles PATCH /api/v1/credit-cards/:id
func (h *CreditCardHandler) UpdateCreditCard(c echo.Context) error {
	var patch domain.CreditCardPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	card, err := h.creditCardService.UpdateCreditCard(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Failed to update credit card")
	}

	log.Info().Str("credit_card_id", card.ID).Msg("Credit card updated")
	return c.JSON(http.StatusOK, toCreditCardResponse(*card))
}

// DeleteCreditCard handles DELETE /api/v1/credit-cards/:id
func (h *CreditCardHandler) DeleteCreditCard(c echo.Context) error {
	id := c.Param("id")
	if err := h.creditCardService.DeleteCreditCard(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete credit card")
	}

	log.Info().Str("credit_card_id", id).Msg("Credit card deleted")
	return c.NoContent(http.StatusNoContent)
}
