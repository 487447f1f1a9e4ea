// Package files discovers the journal-entry exports a run should analyze.
//
// Discovery lists a directory in name order, keeps regular files whose
// extension is recognized and drops editor lock files such as "~$book.xlsx":
//
//	discovery := files.NewDiscovery(".", config.SpreadsheetExtensions, config.TempFilePrefixes)
//	inputs, err := discovery.FindSpreadsheets(".")
package files
