package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/middleware"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/dafibh/fortuna/networth/internal/testutil"
	"github.com/dafibh/fortuna/networth/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Monday 10 June 2024, noon
var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type testServer struct {
	e         *echo.Echo
	repo      *testutil.MockFinanceRepository
	clock     *testutil.FixedClock
	publisher *testutil.RecordingPublisher
	backup    *testutil.MockBackupRepository
	hub       *websocket.Hub
}

type serverOptions struct {
	seed      *domain.FinanceData
	token     string
	rateLimit int
	burst     int
	noBackup  bool
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	repo := testutil.NewMockFinanceRepository()
	if opts.seed != nil {
		repo = testutil.NewMockFinanceRepositoryWith(opts.seed)
	}
	clock := testutil.NewFixedClock(testNow)
	publisher := testutil.NewRecordingPublisher()

	store := service.NewStore(repo, clock, zerolog.Nop())
	store.SetEventPublisher(publisher)
	require.NoError(t, store.Load(context.Background()))

	dataService := service.NewDataService(store)
	var backupService *service.BackupService
	backupRepo := testutil.NewMockBackupRepository()
	if !opts.noBackup {
		backupService = service.NewBackupService(dataService, store, backupRepo)
	}

	hub := websocket.NewHub()
	handlers := Handlers{
		Asset:       NewAssetHandler(service.NewAssetService(store)),
		Liability:   NewLiabilityHandler(service.NewLiabilityService(store)),
		CreditCard:  NewCreditCardHandler(service.NewCreditCardService(store)),
		Transaction: NewTransactionHandler(service.NewTransactionService(store)),
		Settings:    NewSettingsHandler(service.NewSettingsService(store)),
		Dashboard:   NewDashboardHandler(service.NewDashboardService(store)),
		History:     NewHistoryHandler(service.NewHistoryService(store)),
		Data:        NewDataHandler(dataService, backupService),
		WebSocket:   NewWebSocketHandler(hub, []string{"*"}),
	}

	rateLimit, burst := opts.rateLimit, opts.burst
	if rateLimit == 0 {
		rateLimit, burst = 6000, 1000
	}
	limiter := middleware.NewRateLimiterWithConfig(rateLimit, burst)
	t.Cleanup(limiter.Stop)

	e := echo.New()
	RegisterRoutes(e, handlers, middleware.NewAPITokenAuthMiddleware(opts.token), limiter)

	return &testServer{e: e, repo: repo, clock: clock, publisher: publisher, backup: backupRepo, hub: hub}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}

func seedData() *domain.FinanceData {
	data := domain.NewFinanceData()
	data.Assets = append(data.Assets, domain.Asset{
		ID:        "asset-1",
		Name:      "Checking",
		Value:     decimalFrom("1000"),
		Category:  domain.AssetCategoryCashAtBank,
		CreatedAt: testNow.Add(-48 * time.Hour),
	})
	data.CreditCards = append(data.CreditCards, domain.CreditCard{
		ID:              "card-1",
		Name:            "Visa",
		CreditLimit:     decimalFrom("5000"),
		OutstandingDebt: decimalFrom("100"),
		APR:             decimalFrom("19.9"),
		PaymentDay:      15,
		CreatedAt:       testNow.Add(-48 * time.Hour),
	})
	day := 12
	data.Transactions = append(data.Transactions, domain.Transaction{
		ID:          "tx-1",
		Name:        "Salary",
		Amount:      decimalFrom("200"),
		Type:        domain.TransactionTypeIncome,
		Category:    "Cash at Bank",
		Recurring:   true,
		Frequency:   domain.FrequencyMonthly,
		AccountID:   "asset-1",
		AccountType: domain.AccountTypeAsset,
		DayOfMonth:  &day,
		Status:      domain.TransactionStatusEstimated,
		CreatedAt:   testNow.Add(-48 * time.Hour),
	})
	return data
}

func decimalFrom(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
