package engine

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// pct builds an exact percentage rate, pct(25) == 0.25.
func pct(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}

// applyRate multiplies a won amount by rate and truncates to whole won.
func applyRate(base int64, rate decimal.Decimal) int64 {
	if base <= 0 {
		return 0
	}
	return decimal.NewFromInt(base).Mul(rate).Floor().IntPart()
}

func rateString(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// won renders an amount with thousands separators, e.g. "36,000,000 won".
func won(n int64) string {
	return message.NewPrinter(language.Korean).Sprintf("%d won", n)
}

func count(n int64) string {
	return message.NewPrinter(language.Korean).Sprintf("%d", n)
}

func ineligible(reason string, details Details) Outcome {
	if details == nil {
		details = Details{}
	}
	return Outcome{Eligible: false, CreditAmount: 0, Reasons: reason, Details: details}
}

func eligible(credit int64, reason string, details Details) Outcome {
	if details == nil {
		details = Details{}
	}
	return Outcome{Eligible: true, CreditAmount: credit, Reasons: reason, Details: details}
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
