package benford

import (
	"math"

	"github.com/shopspring/decimal"

	"glreport/pkg/contracts/domain"
)

// Digits are the possible leading significant digits.
var Digits = [9]int{1, 2, 3, 4, 5, 6, 7, 8, 9}

var expected = func() [9]float64 {
	var dist [9]float64
	for i, d := range Digits {
		dist[i] = math.Log10(1 + 1/float64(d))
	}
	return dist
}()

// ExpectedDistribution returns the Benford probability of each leading digit
// 1 through 9. The values sum to 1.
func ExpectedDistribution() [9]float64 {
	return expected
}

// LeadingDigit returns the first non-zero digit of |d|, so 0.05 yields 5 and
// -300 yields 3. Zero has no leading digit.
func LeadingDigit(d decimal.Decimal) (int, bool) {
	for _, ch := range d.Abs().String() {
		if ch >= '1' && ch <= '9' {
			return int(ch - '0'), true
		}
	}
	return 0, false
}

// LeadingDigitOfValue is LeadingDigit for numeric cells. Non-numeric cells
// have no leading digit.
func LeadingDigitOfValue(v domain.Value) (int, bool) {
	if v.Kind != domain.KindNumber {
		return 0, false
	}
	return LeadingDigit(v.Number)
}

// CountLeadingDigits tallies the leading digits of values. counts[0] holds
// digit 1. Values without a leading digit are not counted.
func CountLeadingDigits(values []domain.Value) (counts [9]int, total int) {
	for _, v := range values {
		d, ok := LeadingDigitOfValue(v)
		if !ok {
			continue
		}
		counts[d-1]++
		total++
	}
	return counts, total
}

// Conformity levels for first-digit MAD, after Nigrini.
const (
	ConformityClose      = "close conformity"
	ConformityAcceptable = "acceptable conformity"
	ConformityMarginal   = "marginally acceptable conformity"
	ConformityNone       = "nonconformity"
)

const (
	closeThreshold      = 0.006
	acceptableThreshold = 0.012
	marginalThreshold   = 0.015
)

// MeanAbsoluteDeviation averages |observed - expected| over the nine digits.
func MeanAbsoluteDeviation(observed, expected [9]float64) float64 {
	var sum float64
	for i := range observed {
		sum += math.Abs(observed[i] - expected[i])
	}
	return sum / float64(len(observed))
}

// Conformity classifies a first-digit MAD.
func Conformity(mad float64) string {
	switch {
	case mad < closeThreshold:
		return ConformityClose
	case mad < acceptableThreshold:
		return ConformityAcceptable
	case mad < marginalThreshold:
		return ConformityMarginal
	default:
		return ConformityNone
	}
}
