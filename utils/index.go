package utils

import (
	"strconv"
	"strings"
)

// ParseAmount parses a submitted amount given in the currency's smallest unit.
func ParseAmount(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// DisplayAmount converts a smallest-unit amount to major units for log and
// notification text. Never used for the amount sent to the processor.
func DisplayAmount(cents int64) float64 {
	return float64(cents) / 100
}
