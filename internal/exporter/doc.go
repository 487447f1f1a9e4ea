// Package exporter writes the GL analysis report.
//
// MarkdownWriter streams one section per input file through a buffered
// writer: summary statistics, category breakdowns and the Benford table with
// its chart link, or a single error line for a file that could not be
// loaded. CreateReport opens the report file before any input is read, so a
// bad output location fails the run up front.
//
//	w, err := exporter.CreateReport("output/report.md", exporter.ReportOptions{})
//	if err != nil {
//	    return err
//	}
//	w.WriteHeader(time.Now())
//	for _, r := range results {
//	    w.WriteFileResult(r)
//	}
//	w.WriteFooter(exporter.Footer{Processed: len(results)})
//	return w.Close()
//
// Amounts and counts carry thousands separators; Markdown table cells have
// pipes and line breaks escaped.
package exporter
