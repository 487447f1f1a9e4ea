package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"glreport/pkg/contracts/domain"
)

var printer = message.NewPrinter(language.English)

// formatAmount renders a currency amount with thousands separators and two
// decimals, e.g. 1234567.891 as "1,234,567.89". The digits come from the
// decimal itself, never from a float64.
func formatAmount(d decimal.Decimal) string {
	r := d.Round(2)
	whole, frac, _ := strings.Cut(r.Abs().StringFixed(2), ".")
	sign := ""
	if r.IsNegative() {
		sign = "-"
	}
	return sign + groupThousands(whole) + "." + frac
}

// groupThousands inserts separators into a string of decimal digits.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// formatCount renders a count with thousands separators.
func formatCount(n int) string {
	return printer.Sprint(number.Decimal(n))
}

// formatPercent renders a proportion in [0,1] as a percentage with two decimals.
func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// formatDateRange renders "min to max", or "not available".
func formatDateRange(r *domain.DateRange) string {
	if r == nil {
		return "not available"
	}
	return r.Min.String() + " to " + r.Max.String()
}

var cellEscaper = strings.NewReplacer(
	`|`, `\|`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
)

var linkEscaper = strings.NewReplacer(
	`<`, `\<`,
	`>`, `\>`,
	"\n", " ",
	"\r", " ",
)

// linkTarget wraps a relative path in angle brackets so that spaces and
// parentheses in file names keep the link valid.
func linkTarget(path string) string {
	return "<" + linkEscaper.Replace(path) + ">"
}

// escapeCell makes s safe inside a Markdown table cell or heading.
func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
