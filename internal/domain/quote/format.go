package quote

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var locale = language.MustParse("es-MX")

// FormatCurrency renders amount with es-MX grouping and exactly two decimals,
// prefixed by the symbol of code. NaN and infinities format as zero.
func FormatCurrency(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	p := message.NewPrinter(locale)

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := p.Sprint(number.Decimal(amount, number.Scale(2)))

	sym := currencySymbol(p, code)
	if r := lastRune(sym); unicode.IsLetter(r) {
		sym += " "
	}
	return sign + sym + digits
}

// currencySymbol asks x/text for the localized symbol of code. Codes it does
// not know are shown as-is.
func currencySymbol(p *message.Printer, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}
	s := p.Sprint(currency.Symbol(unit.Amount(0)))
	if i := strings.LastIndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ','
	})
	if s == "" {
		return code
	}
	return s
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}

// SafeText trims raw and substitutes fallback when nothing is left.
func SafeText(raw, fallback string) string {
	if t := strings.TrimSpace(raw); t != "" {
		return t
	}
	return fallback
}
