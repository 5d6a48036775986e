package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bwlat/bwlat/internal/stats"
	"github.com/bwlat/bwlat/pkg/types"
)

// decimals is the number of places every reported value is rounded to.
const decimals = 2

// header is the literal label that opens the statistics line.
const header = "(min[ms],max[ms],avg[ms]("

// Reporter writes the statistics of one file.
type Reporter interface {
	Report(ref types.LogFileRef, st types.FileStats) error
}

// TextReporter prints report blocks in the fixed console layout.
type TextReporter struct {
	w *bufio.Writer
}

// NewTextReporter returns a TextReporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: bufio.NewWriter(w)}
}

// Report writes the block for ref and flushes it.
func (r *TextReporter) Report(ref types.LogFileRef, st types.FileStats) error {
	rs := stats.Rounded(st, decimals)
	fmt.Fprintf(r.w, "%s \n%s %s %s %s )\n",
		ref.Stem,
		header,
		FormatValue(rs.Min),
		FormatValue(rs.Max),
		FormatValue(rs.Mean),
	)
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("report: write %s: %w", ref.Stem, err)
	}
	return nil
}

// expThreshold is the magnitude from which values print in exponent form.
const expThreshold = 1e16

// FormatValue prints v in its shortest round-trip decimal form, adding ".0"
// when that form has no fractional part. Magnitudes of 1e16 and above use
// exponent form ("1e+16").
func FormatValue(v float64) string {
	if math.Abs(v) >= expThreshold && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") { // already fractional, NaN or ±Inf
		return s
	}
	return s + ".0"
}
