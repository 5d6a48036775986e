// Package report writes per-file latency statistics to an output stream.
//
// TextReporter emits one two-line block per file:
//
//	<stem>
//	(min[ms],max[ms],avg[ms]( <min> <max> <avg> )
//
// The first line carries a trailing space. Each number is rounded to two
// decimals (stats.Round) and printed in its shortest form with at least one
// fractional digit, so 2 prints as "2.0" and 1048.576 as "1048.58".
package report
