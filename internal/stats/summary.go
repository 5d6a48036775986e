package stats

import (
	"fmt"

	"github.com/bwlat/bwlat/pkg/types"
)

// Summarize computes min, max and mean over values.
//
// The mean is sum/count accumulated in input order, matching a plain
// left-to-right float64 sum.
//
// Returns an error wrapping types.ErrEmptySequence if values is empty.
func Summarize(values []float64) (types.FileStats, error) {
	if len(values) == 0 {
		return types.FileStats{}, fmt.Errorf("stats: %w", types.ErrEmptySequence)
	}

	lo, hi := values[0], values[0]
	var sum float64
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}

	return types.FileStats{
		Min:   lo,
		Max:   hi,
		Mean:  sum / float64(len(values)),
		Count: len(values),
	}, nil
}

// Rounded returns a copy of st with Min, Max and Mean rounded to places.
func Rounded(st types.FileStats, places int) types.FileStats {
	return types.FileStats{
		Min:   Round(st.Min, places),
		Max:   Round(st.Max, places),
		Mean:  Round(st.Mean, places),
		Count: st.Count,
	}
}
