package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberRe matches a signed decimal with an optional magnitude suffix
// ("3.2 billion", "25%", "450k"). Text is expected to be normalised,
// so thousands separators are already gone. The leading group keeps
// digits embedded in identifiers ("Q3") from matching.
var numberRe = regexp.MustCompile(`(?i)(?:^|[^a-z0-9.])(-?\d+(?:\.\d+)?)\s*(%|billion|bn|million|mm|thousand|[kmb]\b)?`)

// extractNumbers parses every numeric mention in the text, applying
// magnitude suffixes. Percent values stay as their face value.
func extractNumbers(text string) []float64 {
	matches := numberRe.FindAllStringSubmatch(text, -1)
	var values []float64
	for _, match := range matches {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		values = append(values, value*suffixScale(match[2]))
	}
	return values
}

func suffixScale(suffix string) float64 {
	switch strings.ToLower(suffix) {
	case "billion", "bn", "b":
		return 1e9
	case "million", "mm", "m":
		return 1e6
	case "thousand", "k":
		return 1e3
	default:
		return 1
	}
}

// withinTolerance reports whether two values agree within the relative
// tolerance. Equal values always agree, including both zero.
func withinTolerance(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}
	return math.Abs(a-b)/scale <= tolerance
}

// numericAlignment compares the claim's numbers against the numbers
// found in the evidence text.
type numericAlignment struct {
	// claimedCount is how many numbers the claim asserts.
	claimedCount int

	// matched means every claimed number has an evidence number within
	// tolerance.
	matched bool

	// signConflict means some claimed number's closest evidence number
	// has the opposite sign.
	signConflict bool
}

// alignNumbers matches each claimed value to its closest evidence
// value by relative difference.
func alignNumbers(claimed, source []float64, tolerance float64) numericAlignment {
	alignment := numericAlignment{claimedCount: len(claimed)}
	if len(claimed) == 0 || len(source) == 0 {
		return alignment
	}

	alignment.matched = true
	for _, want := range claimed {
		best := math.Inf(1)
		bestValue := 0.0
		for _, have := range source {
			diff := relativeDiff(want, have)
			if diff < best {
				best = diff
				bestValue = have
			}
		}
		if !withinTolerance(want, bestValue, tolerance) {
			alignment.matched = false
		}
		if want != 0 && bestValue != 0 && (want < 0) != (bestValue < 0) {
			alignment.signConflict = true
		}
	}
	return alignment
}

func relativeDiff(a, b float64) float64 {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return 0
	}
	return math.Abs(a-b) / scale
}
