// Package scan runs the discovery → parse → aggregate → report pipeline.
//
// Scanner.Run discovers the log files under the configured root and then,
// one file at a time and in discovery order, parses it, summarises its
// values and hands the result to the Reporter. Nothing is shared between
// files. The first error aborts the run; the Summary returned alongside it
// counts the files already reported.
//
// The one exception is an empty file when ScanConfig.SkipEmpty is set: it is
// logged, counted in Summary.Skipped and the run continues.
//
// Discovery and parsing are injectable so tests can drive the pipeline
// without a filesystem.
package scan
