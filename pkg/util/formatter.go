// Package util holds the small numeric-formatting helpers pathspice's
// deck emission shares, in the same spirit as the teacher's own
// formatter: one function per output convention, no general-purpose
// number formatting library pulled in for it.
package util

import "fmt"

// FormatExp renders a time or value field in SPICE's preferred
// scientific notation (spec.md §6: "%.3e for times/values").
func FormatExp(value float64) string {
	return fmt.Sprintf("%.3e", value)
}

// FormatVoltage renders a DC voltage-source level (spec.md §6: "%.3f for
// voltages").
func FormatVoltage(value float64) string {
	return fmt.Sprintf("%.3f", value)
}

// FormatTemp renders the .temp directive's argument (spec.md §6: "%.1f
// for temperature").
func FormatTemp(value float64) string {
	return fmt.Sprintf("%.1f", value)
}
