// Package parser turns bandwidth-test log lines into latency values.
//
// A line is split on runs of whitespace. Token 4 is the transferred size in
// MiB, token 6 the rate and token 7 the rate unit; tokens past 7 are
// ignored. The value is
//
//	bits / bps   where   bits = size * 1024 * 1024 * 8
//	                     bps  = rate * 1000       if unit contains "Mb"
//	                     bps  = rate * 1_000_000  otherwise
//
// and is reported as-is; it is labeled milliseconds downstream without any
// further scaling.
//
// ParseFile reads a whole file, skips blank lines and fails on the first
// malformed line with an error wrapping types.ErrMalformedLine that names
// the file and the 1-based line number.
package parser
