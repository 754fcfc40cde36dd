package util

import (
	"fmt"
	"math"

	"github.com/ArciniegaPatriot/DopeReport/internal/model"
)

// NotAvailable rendered wherever a metric is unknown
const NotAvailable = "N/A"

// Round2 rounds to two decimal places, the display precision for percentages
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercent renders a percentage with two decimals and a % suffix
func FormatPercent(m model.Metric) string {
	if !m.Known() {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", m.Value())
}

// FormatDuration renders seconds as H:MM:SS, or M:SS when under an hour
func FormatDuration(m model.Metric) string {
	if !m.Known() {
		return NotAvailable
	}
	total := int(math.Round(m.Value()))
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
