// Package stats derives per-file aggregates from parsed latency values.
//
// summary.go provides the pure Summarize(values) function that returns the
// minimum, maximum and arithmetic mean of one file's values. An empty input
// is an error (types.ErrEmptySequence): there is no meaningful min, max or
// mean, and a NaN must never reach the report.
//
// round.go provides Round(v, places), the decimal rounding used by the
// reporter. It rounds the exact binary value of v to the nearest decimal
// with the given number of places, ties to even, so 2.005 (stored as
// 2.00499999...) rounds to 2.0 and 0.125 (an exact tie) rounds to 0.12.
package stats
