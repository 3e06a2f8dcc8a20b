package service

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/websocket"
)

// DataService moves the whole aggregate in and out of the tracker
type DataService struct {
	store *Store
}

// NewDataService creates a new DataService
func NewDataService(store *Store) *DataService {
	return &DataService{store: store}
}

// ExportResult is a pretty-printed copy of the aggregate and its download name
type ExportResult struct {
	FileName string
	Content  []byte
}

// Export serializes the current aggregate in the export format
func (s *DataService) Export(ctx context.Context) (*ExportResult, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	content, err := domain.EncodeFinanceDataIndent(data)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: domain.ExportFileName(s.store.Now()),
		Content:  content,
	}, nil
}

// ImportSummary counts what an import brought in
type ImportSummary struct {
	Assets       int `json:"assets"`
	Liabilities  int `json:"liabilities"`
	CreditCards  int `json:"creditCards"`
	Transactions int `json:"transactions"`
	Snapshots    int `json:"snapshots"`
}

// Import replaces the whole aggregate with raw. A payload that does not parse as
// FinanceData fails with ErrMalformedImport and leaves the current state untouched.
func (s *DataService) Import(ctx context.Context, raw []byte) (*ImportSummary, error) {
	imported, err := domain.DecodeFinanceData(raw)
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeData, "import", err)
		return nil, err
	}

	_, err = s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		*data = *imported
		return false, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeData, "import", err)
		return nil, err
	}

	summary := &ImportSummary{
		Assets:       len(imported.Assets),
		Liabilities:  len(imported.Liabilities),
		CreditCards:  len(imported.CreditCards),
		Transactions: len(imported.Transactions),
		Snapshots:    len(imported.NetWorthHistory),
	}
	s.store.publishEvent(websocket.DataImported(summary))
	return summary, nil
}

// Reset replaces the aggregate with an empty one using default settings
func (s *DataService) Reset(ctx context.Context) error {
	_, err := s.store.Mutate(ctx, func(data *domain.FinanceData, now time.Time) (bool, error) {
		*data = *domain.NewFinanceData()
		return false, nil
	})
	if err != nil {
		s.store.publishFailure(websocket.EntityTypeData, "reset", err)
		return err
	}

	s.store.publishEvent(websocket.DataReset(nil))
	return nil
}
