package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotsim/config"
	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/robot"
)

const loggerMetadataKey = "logger"

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

var warningColor = color.New(color.FgYellow)

func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	warningColor.Fprintf(w, "Warning: "+format+"\n", a...)
}

// setupLogger gives every command a logger writing to the app's error writer.
func setupLogger(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
	if err != nil {
		return err
	}
	logger := logging.NewBlankLogger("robotsim")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(level)
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[loggerMetadataKey] = logger
	logging.ReplaceGlobal(logger)
	return nil
}

func syncLogger(c *cli.Context) error {
	//nolint:errcheck
	loggerFrom(c).Sync()
	return nil
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerMetadataKey].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}

// loadConfig builds the config for a command from the --config file, the description argument
// and the global overrides, in that order.
func loadConfig(c *cli.Context) (*config.Config, error) {
	logger := loggerFrom(c)
	description := c.Args().First()

	var cfg *config.Config
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		cfg, err = config.Read(c.Context, path, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read config %s", path)
		}
		if description != "" {
			cfg.Description = description
		}
	} else {
		if description == "" {
			return nil, errors.New("no robot description given, pass a .urdf or .xacro file or --config")
		}
		cfg = config.New(description)
	}

	if xacro := c.String(generalFlagXacro); xacro != "" {
		cfg.Xacro.Command = xacro
	}
	if meshDir := c.String(generalFlagMeshDir); meshDir != "" {
		cfg.MeshDir = meshDir
	}
	if cfg.Debug {
		logger.SetLevel(logging.DEBUG)
	}
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadRobot(c *cli.Context) (*robot.Robot, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return robot.New(c.Context, cfg, loggerFrom(c))
}
