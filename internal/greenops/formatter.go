package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(25200) returns "25,200".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with the given number of decimals and thousand separators.
// Example: FormatFloat(1234.5678, 2) returns "1,234.57".
// Magnitudes beyond the int64 range are grouped the same way.
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	precision = max(precision, 0)
	rounded := RoundTo(f, precision)

	formatted := strconv.FormatFloat(math.Abs(rounded), 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	out := sign + groupDigits(intPart)
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// groupDigits inserts thousand separators into a string of decimal digits.
func groupDigits(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return FormatNumber(n)
	}

	const group = 3
	var b strings.Builder
	lead := len(digits) % group
	if lead == 0 {
		lead = group
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += group {
		b.WriteByte(',')
		b.WriteString(digits[i : i+group])
	}
	return b.String()
}

// FormatCO2e applies the precision policy of a methodology: standard-GWP totals
// keep StandardPrecision decimals, direct-GWP totals are whole, grouped numbers.
func FormatCO2e(v float64, m Methodology) string {
	if m == MethodologyDirectGWP {
		return FormatFloat(v, DirectPrecision)
	}
	return FormatFloat(v, StandardPrecision)
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values at or above LargeNumberThreshold use "~X.X million" and values at or
// above BillionThreshold use "~X.X billion"; smaller values are grouped integers.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatFloat(n, 0)
	}
}
