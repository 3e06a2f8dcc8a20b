package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MaxImportSize bounds the accepted import payload
const MaxImportSize = 10 << 20

// DataHandler handles export, import, reset and backup of the whole data set
type DataHandler struct {
	dataService   *service.DataService
	backupService *service.BackupService
}

// NewDataHandler creates a new DataHandler. backupService may be nil when no backup
// storage is configured.
func NewDataHandler(dataService *service.DataService, backupService *service.BackupService) *DataHandler {
	return &DataHandler{
		dataService:   dataService,
		backupService: backupService,
	}
}

// Export handles GET /api/v1/data/export
func (h *DataHandler) Export(c echo.Context) error {
	export, err := h.dataService.Export(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to export data")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, export.Content)
}

// Import handles POST /api/v1/data/import. The payload is either the raw JSON body or
// a multipart upload in the "file" field.
func (h *DataHandler) Import(c echo.Context) error {
	raw, err := readImportPayload(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	summary, err := h.dataService.Import(c.Request().Context(), raw)
	if err != nil {
		return respondError(c, err, "Failed to import data")
	}

	log.Info().
		Int("assets", summary.Assets).
		Int("liabilities", summary.Liabilities).
		Int("credit_cards", summary.CreditCards).
		Int("transactions", summary.Transactions).
		Msg("Data imported")
	return c.JSON(http.StatusOK, summary)
}

func readImportPayload(c echo.Context) ([]byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing import file")
		}
		if fileHeader.Size > MaxImportSize {
			return nil, fmt.Errorf("import file too large")
		}
		f, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("unreadable import file")
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, MaxImportSize))
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("unreadable request body")
	}
	if len(raw) > MaxImportSize {
		return nil, fmt.Errorf("import payload too large")
	}
	return raw, nil
}

// Reset handles POST /api/v1/data/reset
func (h *DataHandler) Reset(c echo.Context) error {
	if err := h.dataService.Reset(c.Request().Context()); err != nil {
		return respondError(c, err, "Failed to reset data")
	}

	log.Info().Msg("Data reset to defaults")
	return c.NoContent(http.StatusNoContent)
}

// Backup handles POST /api/v1/data/backup
func (h *DataHandler) Backup(c echo.Context) error {
	if h.backupService == nil {
		return NewUnavailableError(c, "Backup storage is not configured")
	}

	result, err := h.backupService.Backup(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to back up data")
	}

	log.Info().Str("key", result.Key).Int("size", result.Size).Msg("Backup stored")
	return c.JSON(http.StatusCreated, result)
}
