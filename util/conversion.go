package util

import (
	"fmt"
	"math"
)

// CentsToDisplay renders an integer minor-unit amount as a major-unit
// string with two decimals: 1050 -> "10.50", 0 -> "0.00". The 1/100
// granularity is a wire contract; keep it exact.
func CentsToDisplay(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// ChipsToCents converts a major-unit chip amount (e.g. from a scenario
// file) to integer cents.
func ChipsToCents(chips float64) int64 {
	return int64(math.Round(chips * 100))
}

func CentsToChips(cents int64) float64 {
	return float64(cents) / 100
}
