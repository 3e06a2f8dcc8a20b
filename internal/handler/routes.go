package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/networth/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers bundles every HTTP handler the API serves
type Handlers struct {
	Asset       *AssetHandler
	Liability   *LiabilityHandler
	CreditCard  *CreditCardHandler
	Transaction *TransactionHandler
	Settings    *SettingsHandler
	Dashboard   *DashboardHandler
	History     *HistoryHandler
	Data        *DataHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Everything except /health goes through
// token authentication and rate limiting.
func RegisterRoutes(e *echo.Echo, h Handlers, auth *middleware.APITokenAuthMiddleware, limiter *middleware.RateLimiter) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	guards := []echo.MiddlewareFunc{auth.Authenticate(), middleware.RateLimitMiddleware(limiter)}

	// Notifications
	e.GET("/ws", h.WebSocket.HandleWS, guards...)

	// API version 1
	api := e.Group("/api/v1", guards...)

	assets := api.Group("/assets")
	assets.POST("", h.Asset.CreateAsset)
	assets.GET("", h.Asset.GetAssets)
	assets.GET("/:id", h.Asset.GetAsset)
	assets.PATCH("/:id", h.Asset.UpdateAsset)
	assets.DELETE("/:id", h.Asset.DeleteAsset)

	liabilities := api.Group("/liabilities")
	liabilities.POST("", h.Liability.CreateLiability)
	liabilities.GET("", h.Liability.GetLiabilities)
	liabilities.GET("/:id", h.Liability.GetLiability)
	liabilities.PATCH("/:id", h.Liability.UpdateLiability)
	liabilities.DELETE("/:id", h.Liability.DeleteLiability)

	cards := api.Group("/credit-cards")
	cards.POST("", h.CreditCard.CreateCreditCard)
	cards.GET("", h.CreditCard.GetCreditCards)
	cards.GET("/:id", h.CreditCard.GetCreditCard)
	cards.PATCH("/:id", h.CreditCard.UpdateCreditCard)
	cards.DELETE("/:id", h.CreditCard.DeleteCreditCard)

	transactions := api.Group("/transactions")
	transactions.POST("", h.Transaction.CreateTransaction)
	transactions.GET("", h.Transaction.GetTransactions)
	transactions.GET("/due", h.Transaction.GetDueTransactions)
	transactions.GET("/summary", h.Transaction.GetSummary)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.PATCH("/:id", h.Transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.Transaction.DeleteTransaction)
	transactions.POST("/:id/confirm", h.Transaction.ConfirmTransaction)
	transactions.POST("/:id/quick-confirm", h.Transaction.QuickConfirmTransaction)

	settings := api.Group("/settings")
	settings.GET("", h.Settings.GetSettings)
	settings.PATCH("", h.Settings.UpdateSettings)

	api.GET("/dashboard/summary", h.Dashboard.GetSummary)
	api.GET("/history", h.History.GetHistory)

	data := api.Group("/data")
	data.GET("/export", h.Data.Export)
	data.POST("/import", h.Data.Import)
	data.POST("/reset", h.Data.Reset)
	data.POST("/backup", h.Data.Backup)
}
