// Package types defines the shared Go types used across the scan pipeline.
// These are the in-memory representations handed from discovery to the
// parser, aggregator and reporter, plus the sentinel errors every stage
// wraps so callers can classify a failure with errors.Is.
package types
