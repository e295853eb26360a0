// Package currencyutils parses and formats the amounts and rates found in
// hand-written debt files and shown on the terminal.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarks = regexp.MustCompile(`(?i)\b(CHF|EUR|USD|GBP)\b|[€$£¥\s]`)
	hundred       = decimal.NewFromInt(100)
)

// ParseAmount parses amounts such as "1'234.50", "1.234,50", "$1,234.50" or
// "CHF 99". An empty string is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount strips currency marks and grouping separators and
// leaves "." as the decimal separator.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarks.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// ParseRate parses an annual rate. A trailing "%" marks a percentage
// ("24.99%" is 0.2499); anything else is taken as a decimal fraction.
func ParseRate(rateStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(rateStr)
	if s == "" {
		return decimal.Zero, nil
	}

	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", ".")

	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse rate '%s': %w", rateStr, err)
	}
	if percent {
		rate = rate.Div(hundred)
	}
	return rate, nil
}

// FormatAmount renders an amount with two decimals, thousands grouping and
// an optional currency mark.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := groupThousands(amount.StringFixed(2))

	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "EUR":
		return "€" + formatted
	case "USD":
		return "$" + formatted
	case "GBP":
		return "£" + formatted
	case "JPY":
		return "¥" + formatted
	default:
		return strings.ToUpper(currency) + " " + formatted
	}
}

// FormatRate renders a decimal fraction as a percentage, 0.2499 as "24.99%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}
