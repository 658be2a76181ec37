package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotsim/referenceframe/urdf"
	"go.viam.com/robotsim/utils"
)

const fileOutputPerm = 0o644

// ExpandAction runs xacro on a description and writes the URDF it produces, after checking
// that the output parses.
func ExpandAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !utils.HasExtension(cfg.Description, urdf.XacroExtension) {
		return errors.Errorf("expand needs a %s file, got %q", urdf.XacroExtension, cfg.Description)
	}

	logger := loggerFrom(c)
	expander := urdf.NewXacroExpander(cfg.Xacro.Command, cfg.Xacro.Args, logger.Sublogger("xacro"))
	data, err := expander.Expand(c.Context, cfg.Description)
	if err != nil {
		return err
	}
	desc, err := urdf.Parse(data)
	if err != nil {
		return errors.Wrapf(err, "xacro output for %s is not a valid description", cfg.Description)
	}

	out := c.String(flagOutput)
	if out == "" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, fileOutputPerm); err != nil {
		return errors.Wrapf(err, "cannot write %s", out)
	}
	printf(c.App.Writer, "wrote robot %s (%d links, %d joints) to %s", desc.Name, len(desc.Links), len(desc.Joints), out)
	return nil
}
