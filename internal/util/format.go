package util //nolint:revive // package name util hosts shared formatting helpers

import (
	"strconv"
	"time"
)

// FormatBalance renders a monetary amount with exactly two decimal
// digits regardless of input precision (12.5 → "12.50", 12 → "12.00").
func FormatBalance(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// FormatCycleDuration formats a refresh-cycle duration for display, handling edge cases.
// Returns "—" for zero or negative durations, truncates to milliseconds for readability.
func FormatCycleDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "—"
	case d < time.Millisecond:
		return d.String()
	default:
		return d.Truncate(time.Millisecond).String()
	}
}
