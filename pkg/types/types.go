package types

import "errors"

// LogFileRef identifies one discovered log file.
type LogFileRef struct {
	// Stem is the display identifier: the path with a trailing ".txt" removed.
	Stem string

	// Path is the on-disk path the parser opens.
	Path string
}

// FileStats is the aggregate of one file's latency values.
// All values are in the unit the parser produces (labeled ms).
type FileStats struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

// Sentinel errors shared by every stage. Stages wrap them with context.
var (
	// ErrMalformedLine: a line with fewer than 8 tokens, an unparsable
	// size or rate, or a zero rate.
	ErrMalformedLine = errors.New("malformed line")

	// ErrEmptySequence: a selected file produced no latency values.
	ErrEmptySequence = errors.New("empty sequence")

	// ErrFileAccess: a root or log file could not be opened or read.
	ErrFileAccess = errors.New("file access")
)
