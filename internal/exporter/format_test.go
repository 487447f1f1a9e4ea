package exporter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"glreport/pkg/contracts/domain"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"-98765.4", "-98,765.40"},
		{"0.005", "0.01"},
		{"999.999", "1,000.00"},
		{"-0.004", "0.00"},
		{"-0.5", "-0.50"},
		{"12345678901234567.89", "12,345,678,901,234,567.89"},
		{"123456789012345678901.235", "123,456,789,012,345,678,901.24"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", formatCount(0))
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "12,345", formatCount(12345))
	assert.Equal(t, "1,000,000", formatCount(1000000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "30.10%", formatPercent(0.30103))
	assert.Equal(t, "100.00%", formatPercent(1))
	assert.Equal(t, "0.00%", formatPercent(0))
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "not available", formatDateRange(nil))

	r := &domain.DateRange{
		Min: domain.DateValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Max: domain.DateValue(time.Date(2024, 3, 31, 17, 5, 0, 0, time.UTC)),
	}
	assert.Equal(t, "2024-01-01 to 2024-03-31 17:05:00", formatDateRange(r))
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `A\|B`, escapeCell("A|B"))
	assert.Equal(t, "line one line two", escapeCell("line one\nline two"))
	assert.Equal(t, "a b", escapeCell("a\r\nb"))
	assert.Equal(t, "plain", escapeCell("plain"))
}

func TestLinkTarget(t *testing.T) {
	assert.Equal(t, "<benford_je.png>", linkTarget("benford_je.png"))
	assert.Equal(t, "<benford_JE Samples (2024).png>", linkTarget("benford_JE Samples (2024).png"))
	assert.Equal(t, `<benford_a\<b\>.png>`, linkTarget("benford_a<b>.png"))
}
