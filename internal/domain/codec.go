package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted blob stores amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var financeDataKeys = []string{"assets", "liabilities", "creditCards", "transactions", "settings", "netWorthHistory"}

// DecodeFinanceData parses a persisted or imported blob. The payload must be a JSON object
// carrying at least one FinanceData key. A blob written before history tracking existed
// has no netWorthHistory and loads with an empty one.
func DecodeFinanceData(raw []byte) (*FinanceData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedImport)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	known := false
	for _, key := range financeDataKeys {
		if _, ok := fields[key]; ok {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: no finance data fields found", ErrMalformedImport)
	}

	data := &FinanceData{}
	if err := json.Unmarshal(trimmed, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	data.Normalize()
	return data, nil
}

// EncodeFinanceData serializes the aggregate compactly for storage
func EncodeFinanceData(data *FinanceData) ([]byte, error) {
	return json.Marshal(data)
}

// EncodeFinanceDataIndent serializes the aggregate in the human-readable export format
func EncodeFinanceDataIndent(data *FinanceData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ExportFileName names an export after the day it was taken
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("finance-data-%s.json", now.Format("2006-01-02"))
}
