package stats

import (
	"math"
	"strconv"
)

// Round rounds v to the given number of decimal places.
//
// The exact binary value is rounded, ties to even: Round(2.005, 2) is 2.0
// because 2.005 is stored slightly below the tie.
//
// NaN and ±Inf are returned unchanged.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if places < 0 {
		places = 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
