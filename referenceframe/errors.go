package referenceframe

import (
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/robotsim/referenceframe/urdf"
)

var (
	// ErrAmbiguousOrMissingBaseLink means zero or several links are not the child of any joint.
	ErrAmbiguousOrMissingBaseLink = errors.New("robot must have exactly one base link")
	// ErrInvalidBaseLinkShape means the base link is not drawn as a box.
	ErrInvalidBaseLinkShape = errors.New("base link must be a box")
	// ErrDanglingReference means a joint names a link that does not exist.
	ErrDanglingReference = errors.New("joint references an unknown link")
	// ErrTooManyWheels means more than two continuous joints were found in differential-drive mode.
	ErrTooManyWheels = errors.New("differential drive supports at most 2 wheels")
	// ErrNotATree means a link has more than one parent joint or cannot be reached from the base link.
	ErrNotATree = errors.New("links and joints do not form a tree")
)

// NewAmbiguousOrMissingBaseLinkError returns an error listing the base link candidates found.
func NewAmbiguousOrMissingBaseLinkError(candidates []string) error {
	if len(candidates) == 0 {
		return errors.Wrap(ErrAmbiguousOrMissingBaseLink, "every link is the child of a joint")
	}
	return errors.Wrapf(ErrAmbiguousOrMissingBaseLink, "candidates: %s", strings.Join(candidates, ", "))
}

// NewInvalidBaseLinkShapeError returns an error for a base link of the wrong shape.
func NewInvalidBaseLinkShapeError(link string, kind urdf.ShapeKind) error {
	return errors.Wrapf(ErrInvalidBaseLinkShape, "base link %q is a %s", link, kind)
}

// NewDanglingReferenceError returns an error for a joint whose parent or child link does not exist.
func NewDanglingReferenceError(joint, link string) error {
	return errors.Wrapf(ErrDanglingReference, "joint %q references link %q", joint, link)
}

// NewTooManyWheelsError returns an error naming every continuous joint found.
func NewTooManyWheelsError(wheels []string) error {
	return errors.Wrapf(ErrTooManyWheels, "found %d continuous joints (%s)", len(wheels), strings.Join(wheels, ", "))
}

// NewNotATreeError returns an error describing why the links do not form a tree.
func NewNotATreeError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotATree, format, args...)
}
