// Package month converts service dates between the UI form "YYYY-MM" and the
// stored form "MM-YYYY".
//
// The conversions are plain string transforms. They are not calendar aware and
// never fail: malformed input yields a best-effort malformed result. Use
// ValidUI to check user input before converting it.
package month

import (
	"strings"
	"time"
)

const (
	sep = "-"

	// uiLayout is the time layout of the UI form.
	uiLayout = "2006-01"
)

// ToStored converts a "YYYY-MM" month into the stored "MM-YYYY" form.
// An empty input yields an empty output.
func ToStored(ui string) string {
	if ui == "" {
		return ""
	}
	year, mon := split(ui)
	return mon + sep + year
}

// ToUI converts a stored "MM-YYYY" month into the "YYYY-MM" UI form.
// An empty input yields an empty output.
func ToUI(stored string) string {
	if stored == "" {
		return ""
	}
	mon, year := split(stored)
	return year + sep + mon
}

// SortKey returns a key for the stored month that sorts lexicographically in
// chronological order.
func SortKey(stored string) string {
	return ToUI(stored)
}

// ValidUI reports whether ui is a well-formed "YYYY-MM" month with a
// four-digit year and a month between 01 and 12.
func ValidUI(ui string) bool {
	if len(ui) != len(uiLayout) {
		return false
	}
	_, err := time.Parse(uiLayout, ui)
	return err == nil
}

// Current returns the UI month containing t.
func Current(t time.Time) string {
	return t.Format(uiLayout)
}

// split returns the first two separator-delimited parts of s. Missing parts
// are empty and anything past the second part is dropped.
func split(s string) (string, string) {
	parts := strings.Split(s, sep)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
