// Package operations drives a glreport run.
//
// Pipeline lists the spreadsheet exports in the input directory and runs
// each one through the registered steps in order:
//
//	load → clean → aggregate → benford
//
// Files are processed one at a time. A file that fails to load, or whose
// steps return an error or panic, becomes a failed FileResult and the run
// moves on; only an output location that cannot be written stops the run.
// The report is streamed as files finish, and every run, file and step gets
// its own span.
//
//	p := operations.NewPipeline(cfg, logger,
//	    operations.WithTracer(tracer),
//	    operations.WithMetrics(metrics))
//	summary, err := p.Run(ctx)
package operations
