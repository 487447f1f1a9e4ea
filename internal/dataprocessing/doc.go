// Package dataprocessing turns GL journal-entry exports into datasets and
// derives the per-file figures the report shows.
//
// Loader reads the first worksheet of an .xlsx/.xlsm workbook, or a .csv
// file, treating the first row as the header. Cells keep their type: numbers
// become decimals, date-formatted cells become dates, everything else stays
// text. Clean trims text values. Aggregator computes the summary statistics
// and the categorical breakdowns, driven by SummaryRules and CategoryRules.
//
//	ds, err := dataprocessing.NewLoader(logger).Load(ctx, path)
//	if err != nil {
//	    // a LOAD AppError; report it and move on to the next file
//	}
//	ds = dataprocessing.Clean(ds)
//	agg := dataprocessing.NewAggregator(logger)
//	summary := agg.ComputeSummary(ctx, ds)
//	categories := agg.ComputeCategoryCounts(ctx, ds)
//
// Columns a statistic needs may be absent; each statistic then degrades as
// its FieldRule says instead of failing the file.
package dataprocessing
