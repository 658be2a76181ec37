package utils

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SpaceDelimitedStringToFloatSlice splits up a space-delimited string such as a URDF "xyz"
// attribute and converts every field to a float. want is the number of fields required; a
// negative want accepts any count.
func SpaceDelimitedStringToFloatSlice(s string, want int) ([]float64, error) {
	fields := strings.Fields(s)
	if want >= 0 && len(fields) != want {
		return nil, errors.Errorf("expected %d space separated values but got %d in %q", want, len(fields), s)
	}
	converted := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q in %q", field, s)
		}
		converted = append(converted, value)
	}
	return converted, nil
}
