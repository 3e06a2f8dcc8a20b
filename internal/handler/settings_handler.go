package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.GetSettings(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to get settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PATCH /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var patch domain.SettingsPatch
	if err := c.Bind(&patch); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	settings, err := h.settingsService.UpdateSettings(c.Request().Context(), patch)
	if err != nil {
		return respondError(c, err, "Failed to update settings")
	}

	log.Info().
		Str("currency", settings.Currency).
		Str("theme", string(settings.Theme)).
		Bool("include_credit", settings.IncludeCreditInNetWorth).
		Msg("Settings updated")
	return c.JSON(http.StatusOK, settings)
}
