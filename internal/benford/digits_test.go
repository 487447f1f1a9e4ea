package benford

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"glreport/pkg/contracts/domain"
)

func TestExpectedDistribution(t *testing.T) {
	dist := ExpectedDistribution()

	var sum float64
	for i, p := range dist {
		sum += p
		if i > 0 {
			assert.Less(t, p, dist[i-1], "probabilities decrease with the digit")
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.30103, dist[0], 1e-5)
	assert.InDelta(t, 0.17609, dist[1], 1e-5)
	assert.InDelta(t, 0.04576, dist[8], 1e-5)

	dist[0] = 0
	assert.InDelta(t, 0.30103, ExpectedDistribution()[0], 1e-5, "callers get a copy")
}

func TestLeadingDigit(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		found bool
	}{
		{"1234.56", 1, true},
		{"-300", 3, true},
		{"0.05", 5, true},
		{"-0.056", 5, true},
		{"900", 9, true},
		{"0.0009", 9, true},
		{"7", 7, true},
		{"980000000000000000000000", 9, true},
		{"0", 0, false},
		{"-0.000", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LeadingDigit(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeadingDigitOfValue(t *testing.T) {
	_, ok := LeadingDigitOfValue(domain.TextValue("123"))
	assert.False(t, ok, "text is not an amount")

	_, ok = LeadingDigitOfValue(domain.BoolValue(true))
	assert.False(t, ok)

	_, ok = LeadingDigitOfValue(domain.EmptyValue())
	assert.False(t, ok)

	d, ok := LeadingDigitOfValue(domain.NumberValue(decimal.RequireFromString("-42.5")))
	assert.True(t, ok)
	assert.Equal(t, 4, d)
}

func TestCountLeadingDigits(t *testing.T) {
	values := []domain.Value{
		domain.NumberValue(decimal.RequireFromString("100")),
		domain.NumberValue(decimal.RequireFromString("-150")),
		domain.NumberValue(decimal.RequireFromString("0")),
		domain.NumberValue(decimal.RequireFromString("0.09")),
		domain.TextValue("n/a"),
		domain.EmptyValue(),
	}

	counts, total := CountLeadingDigits(values)

	assert.Equal(t, 3, total)
	assert.Equal(t, 2, counts[0])
	assert.Equal(t, 1, counts[8])
}

func TestMeanAbsoluteDeviation(t *testing.T) {
	exp := ExpectedDistribution()
	assert.Zero(t, MeanAbsoluteDeviation(exp, exp))

	var allOnes [9]float64
	allOnes[0] = 1
	mad := MeanAbsoluteDeviation(allOnes, exp)
	// |1 - p1| + (1 - p1) over nine digits.
	assert.InDelta(t, 2*(1-exp[0])/9, mad, 1e-12)
	assert.False(t, math.IsNaN(mad))
}

func TestConformity(t *testing.T) {
	assert.Equal(t, ConformityClose, Conformity(0.001))
	assert.Equal(t, ConformityAcceptable, Conformity(0.006))
	assert.Equal(t, ConformityMarginal, Conformity(0.013))
	assert.Equal(t, ConformityNone, Conformity(0.015))
	assert.Equal(t, ConformityNone, Conformity(0.2))
}
