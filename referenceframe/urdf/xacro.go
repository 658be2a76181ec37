package urdf

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.viam.com/robotsim/logging"
)

// DefaultXacroCommand is the macro expander looked up on PATH when none is configured.
const DefaultXacroCommand = "xacro"

// An Expander turns a macro document into a plain URDF document.
type Expander interface {
	Expand(ctx context.Context, path string) ([]byte, error)
}

// XacroExpander runs an external xacro executable as "<Command> <Args...> <path>" and reads the
// expanded URDF from its stdout.
type XacroExpander struct {
	Command string
	Args    []string
	logger  logging.Logger
}

// NewXacroExpander returns an expander running command, or DefaultXacroCommand when command is empty.
func NewXacroExpander(command string, args []string, logger logging.Logger) *XacroExpander {
	if command == "" {
		command = DefaultXacroCommand
	}
	return &XacroExpander{Command: command, Args: args, logger: logger}
}

// Expand implements Expander. The subprocess is bound to ctx; there is no timeout of its own.
func (x *XacroExpander) Expand(ctx context.Context, path string) ([]byte, error) {
	args := append(append([]string{}, x.Args...), path)
	x.logger.Debugw("running xacro", "command", x.Command, "args", args)

	//nolint:gosec // G204: command comes from local configuration
	cmd := exec.CommandContext(ctx, x.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewMalformedDescriptionError("xacro processing failed: %v\nStderr: %s",
			err, strings.TrimSpace(stderr.String()))
	}
	if strings.TrimSpace(stdout.String()) == "" {
		return nil, NewMalformedDescriptionError("xacro produced no output for %s", path)
	}
	if stderr.Len() > 0 {
		x.logger.Warnw("xacro wrote to stderr", "file", path, "stderr", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
