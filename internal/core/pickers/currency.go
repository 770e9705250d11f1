package pickers

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ugxPrinter = message.NewPrinter(language.English)

// FormatUGX renders an amount in Uganda shillings rounded to whole units,
// e.g. "UGX 12,500". NaN and infinities render as zero; amounts beyond the
// int64 range are clamped to it.
func FormatUGX(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return ugxPrinter.Sprintf("UGX %d", wholeUnits(amount))
}

func wholeUnits(amount float64) int64 {
	r := math.Round(amount)
	switch {
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	case r >= float64(math.MaxInt64):
		return math.MaxInt64
	case r <= float64(math.MinInt64):
		return math.MinInt64
	}
	return int64(r)
}
