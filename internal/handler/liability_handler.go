package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LiabilityHandler handles liability-related HTTP requests
type LiabilityHandler struct {
	liabilityService *service.LiabilityService
}

// NewLiabilityHandler creates a new LiabilityHandler
func NewLiabilityHandler(liabilityService *service.LiabilityService) *LiabilityHandler {
	return &LiabilityHandler{liabilityService: liabilityService}
}

// CreateLiabilityRequest represents the create liability request body
type CreateLiabilityRequest struct {
	Name         string                   `json:"name"`
	Value        decimal.Decimal          `json:"value"`
	Category     domain.LiabilityCategory `json:"category"`
	InterestRate *decimal.Decimal         `json:"interestRate,omitempty"`
	Description  string                   `json:"description,omitempty"`
}

// CreateLiability handles POST /api/v1/liabilities
func (h *LiabilityHandler) CreateLiability(c echo.Context) error {
	var req CreateLiabilityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	liability, err := h.liabilityService.CreateLiability(c.Request().Context(), service.CreateLiabilityInput{
		Name:         req.Name,
		Value:        req.Value,
		Category:     req.Category,
		InterestRate: req.InterestRate,
		Description:  req.Description,
	})
	if err != nil {
		return respondError(c, err, "Failed to create liability")
	}

	log.Info().Str("liability_id", liability.ID).Str("name", liability.Name).Msg("Liability created")
	return c.JSON(http.StatusCreated, liability)
}

// GetLiabilities handles GET /api/v1/liabilities
func (h *LiabilityHandler) GetLiabilities(c echo.Context) error {
	liabilities, err := h.liabilityService.GetLiabilities(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get liabilities")
	}
	return c.JSON(http.StatusOK, liabilities)
}

// GetLiability handles GET /api/v1/liabilities/:id
func (h *LiabilityHandler) GetLiability(c echo.Context) error {
	liability, err := h.liabilityService.GetLiability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get liability")
	}
	return c.JSON(http.StatusOK, liability)
}

// UpdateLiability handles PATCH /api/v1/liabilities/:id
func (h *LiabilityHandler) UpdateLiability(c echo.Context) error {
	var patch domain.LiabilityPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	liability, err := h.liabilityService.UpdateLiability(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Failed to update liability")
	}

	log.Info().Str("liability_id", liability.ID).Msg("Liability updated")
	return c.JSON(http.StatusOK, liability)
}

// DeleteLiability handles DELETE /api/v1/liabilities/:id
func (h *LiabilityHandler) DeleteLiability(c echo.Context) error {
	id := c.Param("id")
	if err := h.liabilityService.DeleteLiability(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete liability")
	}

	log.Info().Str("liability_id", id).Msg("Liability deleted")
	return c.NoContent(http.StatusNoContent)
}
