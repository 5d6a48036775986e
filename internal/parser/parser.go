package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bwlat/bwlat/pkg/types"
)

// Token positions within a whitespace-split log line.
const (
	tokSize = 4
	tokRate = 6
	tokUnit = 7

	// minTokens is the number of tokens a line must carry (indices 0–7).
	minTokens = tokUnit + 1
)

// Scaling constants for the latency formula.
const (
	bitsPerMiB = 1024 * 1024 * 8

	// megabitMarker selects the smaller rate multiplier when it appears
	// anywhere in the unit token ("Mbps", "Mbits/sec", ...).
	megabitMarker = "Mb"

	megabitScale = 1000.0
	defaultScale = 1_000_000.0
)

// ParseLine computes the latency value for one log line.
//
// Returns an error wrapping types.ErrMalformedLine if the line has fewer than
// 8 tokens, if token 4 or 6 is not a float, or if the rate is zero.
func ParseLine(line string) (float64, error) {
	toks := strings.Fields(line)
	if len(toks) < minTokens {
		return 0, fmt.Errorf("%w: %d tokens, want at least %d", types.ErrMalformedLine, len(toks), minTokens)
	}

	size, err := strconv.ParseFloat(toks[tokSize], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: size %q: %v", types.ErrMalformedLine, toks[tokSize], err)
	}
	rate, err := strconv.ParseFloat(toks[tokRate], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rate %q: %v", types.ErrMalformedLine, toks[tokRate], err)
	}

	bps := rate * rateScale(toks[tokUnit])
	if bps == 0 {
		return 0, fmt.Errorf("%w: zero rate", types.ErrMalformedLine)
	}

	return size * bitsPerMiB / bps, nil
}

// rateScale returns the multiplier that converts a rate token to the
// formula's bits-per-second denominator.
func rateScale(unit string) float64 {
	if strings.Contains(unit, megabitMarker) {
		return megabitScale
	}
	return defaultScale
}

// ParseFile reads path and returns one latency value per non-blank line,
// in file order.
//
// Read failures wrap types.ErrFileAccess; the first malformed line aborts
// the file with an error wrapping types.ErrMalformedLine.
func ParseFile(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: %w: %w", types.ErrFileAccess, err)
	}
	return ParseContent(path, string(data))
}

// lineBreaks normalises "\r\n" and bare "\r" endings to "\n".
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseContent parses already-read file content. Lines may end in "\n",
// "\r\n" or "\r". name is used only in error messages.
func ParseContent(name, content string) ([]float64, error) {
	lines := strings.Split(lineBreaks.Replace(content), "\n")
	values := make([]float64, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("parser: %s:%d: %w", name, i+1, err)
		}
		values = append(values, v)
	}
	return values, nil
}
