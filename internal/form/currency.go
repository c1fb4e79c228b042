package form

import (
	"strconv"
	"strings"
)

// NormalizeCurrencyInput keeps only digits and the first decimal point,
// mirroring what the entry widget allows while typing. Everything else
// (currency signs, grouping commas, stray characters) is dropped.
func NormalizeCurrencyInput(raw string) string {
	var b strings.Builder
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCurrency renders a stored numeric string thousands-grouped with
// exactly two fraction digits for display. Unparseable input is echoed
// back untouched so the user can correct it.
func FormatCurrency(raw string) string {
	if raw == "" {
		return ""
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}

	fixed := strconv.FormatFloat(value, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
