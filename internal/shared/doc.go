// Package shared holds code used by more than one package that belongs to
// no single layer.
//
// The testutil subpackage provides the captured-log handler and the
// workbook and CSV fixture writers used by the loader, pipeline and report
// tests:
//
//	logger, handler := testutil.NewTestLogger(t)
//	path := testutil.WriteWorkbook(t, dir, "je.xlsx", testutil.JournalHeader, rows)
package shared
