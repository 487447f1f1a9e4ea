// Package benford tests the Amount column of a journal-entry dataset against
// Benford's Law for first digits.
//
// Under Benford's Law the leading significant digit d of naturally occurring
// amounts appears with probability log10(1 + 1/d), so about 30.1% of amounts
// start with 1 and about 4.6% with 9. Large departures from that curve are a
// classic red flag in GL testing.
//
// Analyzer counts leading digits of the non-zero numeric amounts, compares
// them with ExpectedDistribution, scores the fit by mean absolute deviation
// and renders a grouped bar chart through a ChartRenderer. A chart that
// cannot be written is logged and left out of the result; it never fails the
// analysis.
package benford
