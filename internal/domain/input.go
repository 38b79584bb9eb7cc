package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultExtraDaysQuantity is used when a quantity input does not parse.
// It is 1 rather than 0 so a bad input cannot switch the service off.
const DefaultExtraDaysQuantity = 1

var (
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
)

// ParsePrice coerces a price typed by staff. Accepts "50", "50.5" and the
// Brazilian "50,50". Only the leading number is read, so "50abc" is 50.
// Input with no leading number becomes 0.
func ParsePrice(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(leadingDecimal.FindString(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity coerces an extra days quantity. Only the leading integer is
// read, so "3.5" is 3. Input with no leading integer, and values below 1,
// become DefaultExtraDaysQuantity.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(leadingInteger.FindString(strings.TrimSpace(raw)))
	if err != nil || n < 1 {
		return DefaultExtraDaysQuantity
	}
	return n
}

// FormatBRL formats an amount the way the console shows it: "R$ 150,00"
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
