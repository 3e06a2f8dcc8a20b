package util

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// IsKnownCurrency reports whether code is an ISO 4217 code known to go-money
func IsKnownCurrency(code string) bool {
	if code == "" {
		return false
	}
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// FormatMoney renders amount in the display format of the currency. The currency is a
// label only: no conversion happens. Unknown codes fall back to "<amount> <code>".
func FormatMoney(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}
