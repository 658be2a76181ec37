package utils

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParseFloatOrZero converts user supplied text to a float. Blank, malformed and non-finite
// input all become 0.
func ParseFloatOrZero(text string) float64 {
	value, err := cast.ToFloat64E(strings.TrimSpace(text))
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// ParseFloatsOrZero applies ParseFloatOrZero to every element.
func ParseFloatsOrZero(texts []string) []float64 {
	values := make([]float64, len(texts))
	for i, text := range texts {
		values[i] = ParseFloatOrZero(text)
	}
	return values
}
