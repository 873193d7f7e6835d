package notification

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// fallbackCurrency is used when the request carries a code that x/text does
// not recognise or that names no real currency.
var fallbackCurrency = currency.USD

// formatLocale fixes the currency symbols of every rendered amount.
var formatLocale = language.AmericanEnglish

// groupSeparator is the en-US thousands separator.
const groupSeparator = ","

// FormatCurrency renders amount in the given ISO 4217 currency using en-US
// conventions, e.g. "$15,000.00". Unknown, malformed or placeholder codes
// fall back to the default currency; the function never fails.
func FormatCurrency(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil || isPlaceholderCurrency(unit) {
		unit = fallbackCurrency
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.RoundBank(int32(scale))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	symbol := message.NewPrinter(formatLocale).Sprint(currency.Symbol(unit))
	return sign + symbol + groupDigits(rounded.StringFixed(int32(scale)))
}

// isPlaceholderCurrency reports codes reserved for testing or for
// transactions without a currency.
func isPlaceholderCurrency(u currency.Unit) bool {
	return u == currency.XXX || u == currency.XTS
}

// groupDigits inserts group separators into the integer part of a plain
// non-negative decimal string such as "1234567.50".
func groupDigits(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteString(".")
		b.WriteString(frac)
	}
	return b.String()
}
