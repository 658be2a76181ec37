package urdf

import "github.com/pkg/errors"

// ErrMalformedDescription is returned for any robot description that cannot be turned into link
// and joint records: unreadable XML, missing attributes, unsupported shapes or a failed xacro run.
var ErrMalformedDescription = errors.New("malformed robot description")

// NewMalformedDescriptionError wraps ErrMalformedDescription with a formatted reason.
func NewMalformedDescriptionError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedDescription, format, args...)
}

func newMissingAttributeError(element, name, attr string) error {
	return NewMalformedDescriptionError("%s %q is missing the %q attribute", element, name, attr)
}
