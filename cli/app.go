// Package cli contains the robotsim command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagConfig   = "config"
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"
	generalFlagXacro    = "xacro"
	generalFlagMeshDir  = "mesh-dir"

	flagWatch  = "watch"
	flagSpeed  = "speed"
	flagRPY    = "rpy"
	flagSteps  = "steps"
	flagOutput = "output"
	flagPlot   = "plot"
)

var app = &cli.App{
	Name:            "robotsim",
	Usage:           "load, inspect and drive URDF robots",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      generalFlagConfig,
			Aliases:   []string{"c"},
			Usage:     "load configuration from `FILE`",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:  generalFlagDebug,
			Usage: "enable debug logging",
		},
		&cli.StringFlag{
			Name:  generalFlagLogLevel,
			Usage: "log `LEVEL`: debug, info, warn or error",
			Value: "info",
		},
		&cli.StringFlag{
			Name:  generalFlagXacro,
			Usage: "xacro `COMMAND` used to expand .xacro descriptions",
		},
		&cli.StringFlag{
			Name:      generalFlagMeshDir,
			Usage:     "load box, cylinder and sphere meshes from `DIR`",
			TakesFile: true,
		},
	},
	Before: setupLogger,
	After:  syncLogger,
	Commands: []*cli.Command{
		{
			Name:      "describe",
			Usage:     "print the links and joints of a robot description",
			ArgsUsage: "[robot.urdf|robot.xacro]",
			Action:    DescribeAction,
		},
		{
			Name:      "validate",
			Usage:     "check that a robot description builds",
			ArgsUsage: "[robot.urdf|robot.xacro]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  flagWatch,
					Usage: "validate again every time the file is written, until interrupted",
				},
			},
			Action: ValidateAction,
		},
		{
			Name:      "transforms",
			Usage:     "print the world position of every link",
			ArgsUsage: "[robot.urdf|robot.xacro]",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  flagSpeed,
					Usage: "wheel speed in radians per second, once per wheel in declaration order",
				},
				&cli.IntFlag{
					Name:  flagSteps,
					Usage: "number of time steps to drive before printing",
				},
			},
			Action: TransformsAction,
		},
		{
			Name:      "drive",
			Usage:     "drive a wheeled robot and print its pose after every step",
			ArgsUsage: "[robot.urdf|robot.xacro]",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  flagSpeed,
					Usage: "wheel speed in radians per second, once per wheel in declaration order",
				},
				&cli.StringSliceFlag{
					Name:  flagRPY,
					Usage: "extra wheel rotation as `INDEX:ROLL,PITCH,YAW` in radians",
				},
				&cli.IntFlag{
					Name:  flagSteps,
					Usage: "number of time steps to drive",
					Value: 1,
				},
				&cli.StringFlag{
					Name:      flagPlot,
					Usage:     "also draw the ground track to `FILE` (.png, .svg or .pdf)",
					TakesFile: true,
				},
			},
			Action: DriveAction,
		},
		{
			Name:      "expand",
			Usage:     "run xacro on a description and write the resulting URDF",
			ArgsUsage: "<robot.xacro>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:      flagOutput,
					Aliases:   []string{"o"},
					Usage:     "write the URDF to `FILE` instead of stdout",
					TakesFile: true,
				},
			},
			Action: ExpandAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
