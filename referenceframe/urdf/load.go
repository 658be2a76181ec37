package urdf

import (
	"context"
	"os"
	"path/filepath"

	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/utils"
)

// File extensions accepted by Load.
const (
	Extension      = ".urdf"
	XacroExtension = ".xacro"
)

// Load reads the description at path. URDF files are parsed as they are; xacro files are first
// run through expander, which defaults to the xacro found on PATH when nil.
func Load(ctx context.Context, path string, expander Expander, logger logging.Logger) (*Description, error) {
	var data []byte
	switch {
	case utils.HasExtension(path, Extension):
		//nolint:gosec
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, NewMalformedDescriptionError("failed to read %s: %v", path, err)
		}
		data = raw
	case utils.HasExtension(path, XacroExtension):
		if expander == nil {
			expander = NewXacroExpander("", nil, logger.Sublogger("xacro"))
		}
		expanded, err := expander.Expand(ctx, path)
		if err != nil {
			return nil, err
		}
		data = expanded
	default:
		return nil, NewMalformedDescriptionError("URDF or XACRO file expected, got %q", filepath.Base(path))
	}

	desc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Debugw("loaded robot description",
		"file", path, "robot", desc.Name, "links", len(desc.Links), "joints", len(desc.Joints))
	return desc, nil
}
