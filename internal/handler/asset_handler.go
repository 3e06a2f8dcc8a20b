package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the create asset request body
type CreateAssetRequest struct {
	Name        string               `json:"name"`
	Value       decimal.Decimal      `json:"value"`
	Category    domain.AssetCategory `json:"category"`
	Description string               `json:"description,omitempty"`
}

// CreateAsset handles POST /api/v1/assets
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	var req CreateAssetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	asset, err := h.assetService.CreateAsset(c.Request().Context(), service.CreateAssetInput{
		Name:        req.Name,
		Value:       req.Value,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err, "Failed to create asset")
	}

	log.Info().Str("asset_id", asset.ID).Str("name", asset.Name).Msg("Asset created")
	return c.JSON(http.StatusCreated, asset)
}

// GetAssets handles GET /api/v1/assets
func (h *AssetHandler) GetAssets(c echo.Context) error {
	assets, err := h.assetService.GetAssets(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get assets")
	}
	return c.JSON(http.StatusOK, assets)
}

// GetAsset handles GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c echo.Context) error {
	asset, err := h.assetService.GetAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get asset")
	}
	return c.JSON(http.StatusOK, asset)
}

// UpdateAsset handles PATCH /api/v1/assets/:id
func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	var patch domain.AssetPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	asset, err := h.assetService.UpdateAsset(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err, "Failed to update asset")
	}

	log.Info().Str("asset_id", asset.ID).Msg("Asset updated")
	return c.JSON(http.StatusOK, asset)
}

// DeleteAsset handles DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	id := c.Param("id")
	if err := h.assetService.DeleteAsset(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete asset")
	}

	log.Info().Str("asset_id", id).Msg("Asset deleted")
	return c.NoContent(http.StatusNoContent)
}
