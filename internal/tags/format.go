package tags

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Documents are French; dates, months and decimal separators follow the
// French convention.

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

func fmtMonthYear(t *time.Time) string {
	if t == nil {
		return ""
	}
	return frenchMonths[t.Month()-1] + " " + t.Format("2006")
}

// fmtMoney renders an amount with two decimals and a comma separator,
// e.g. "1520,50".
func fmtMoney(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// fmtNumber renders a quantity without trailing zeros, comma separator.
func fmtNumber(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

func fmtInt(n int) string {
	return decimal.NewFromInt(int64(n)).String()
}
