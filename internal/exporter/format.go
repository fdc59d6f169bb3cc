package exporter

import (
	"strconv"
)

// formatFloat formats a statistic with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatInt formats a count
func formatInt(i int) string {
	return strconv.Itoa(i)
}
