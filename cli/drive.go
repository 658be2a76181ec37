package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotsim/robot"
	"go.viam.com/robotsim/spatialmath"
	"go.viam.com/robotsim/utils"
)

// rpyFlag is one parsed --rpy value.
type rpyFlag struct {
	wheel            int
	roll, pitch, yaw string
}

// parseRPYFlag parses INDEX:ROLL,PITCH,YAW. The angles are kept as text; like the speeds they
// count as 0 when they are not numbers.
func parseRPYFlag(s string) (rpyFlag, error) {
	idx, angles, ok := strings.Cut(s, ":")
	if !ok {
		return rpyFlag{}, errors.Errorf("invalid --%s %q, expected INDEX:ROLL,PITCH,YAW", flagRPY, s)
	}
	wheel, err := cast.ToIntE(strings.TrimSpace(idx))
	if err != nil {
		return rpyFlag{}, errors.Wrapf(err, "invalid wheel index in --%s %q", flagRPY, s)
	}
	parts := strings.Split(angles, ",")
	if len(parts) > 3 {
		return rpyFlag{}, errors.Errorf("invalid --%s %q, expected at most 3 angles", flagRPY, s)
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return rpyFlag{wheel: wheel, roll: parts[0], pitch: parts[1], yaw: parts[2]}, nil
}

// wheelInputs builds one input per wheel from the --speed and --rpy values.
func wheelInputs(wheels int, speeds, rpys []string) ([]robot.WheelInput, error) {
	if len(speeds) > wheels {
		return nil, errors.Errorf("got %d speeds for %d wheels", len(speeds), wheels)
	}
	inputs := make([]robot.WheelInput, wheels)
	for i, speed := range speeds {
		inputs[i].Speed = speed
	}
	for _, s := range rpys {
		rpy, err := parseRPYFlag(s)
		if err != nil {
			return nil, err
		}
		if rpy.wheel < 0 || rpy.wheel >= wheels {
			return nil, errors.Errorf("wheel index %d in --%s out of range, robot has %d wheels", rpy.wheel, flagRPY, wheels)
		}
		inputs[rpy.wheel].Roll = rpy.roll
		inputs[rpy.wheel].Pitch = rpy.pitch
		inputs[rpy.wheel].Yaw = rpy.yaw
	}
	return inputs, nil
}

// DriveAction applies the wheel inputs for --steps time steps and prints the pose after each.
func DriveAction(c *cli.Context) error {
	r, err := loadRobot(c)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer r.Close()

	inputs, err := wheelInputs(len(r.WheelNames()), c.StringSlice(flagSpeed), c.StringSlice(flagRPY))
	if err != nil {
		return err
	}
	if !r.Drivable() {
		warningf(c.App.ErrWriter, "robot %s cannot be driven, its pose will not change", r.Model().Name())
	}

	poses := make([]spatialmath.Pose2D, 0, c.Int(flagSteps)+1)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Step", "X", "Y", "Theta", "Heading (deg)"})
	appendPose := func(step int) {
		pose := r.Pose()
		poses = append(poses, pose)
		t.AppendRow([]interface{}{
			step,
			formatFloat(pose.X),
			formatFloat(pose.Y),
			formatFloat(pose.Theta),
			fmt.Sprintf("%.1f", utils.RadToDeg(pose.Theta)),
		})
	}
	appendPose(0)
	for step := 1; step <= c.Int(flagSteps); step++ {
		if err := r.ApplyInputs(inputs); err != nil {
			return err
		}
		appendPose(step)
	}
	printf(c.App.Writer, "%s", t.Render())
	printf(c.App.Writer, "%s", r.Readout())

	if out := c.String(flagPlot); out != "" {
		if err := savePathPlot(out, r.Model().Name(), poses); err != nil {
			return err
		}
		printf(c.App.Writer, "saved path plot to %s", out)
	}
	return nil
}

// TransformsAction prints the world position of every link, optionally after driving.
func TransformsAction(c *cli.Context) error {
	r, err := loadRobot(c)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer r.Close()

	inputs, err := wheelInputs(len(r.WheelNames()), c.StringSlice(flagSpeed), nil)
	if err != nil {
		return err
	}
	for step := 0; step < c.Int(flagSteps); step++ {
		if err := r.ApplyInputs(inputs); err != nil {
			return err
		}
	}
	printf(c.App.Writer, "%s", transformsTable(r.Transforms()))
	return nil
}

func transformsTable(transforms []robot.LinkTransform) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Link", "X", "Y", "Z"})
	for _, lt := range transforms {
		t.AppendRow([]interface{}{
			lt.Name,
			formatFloat(lt.Position.X),
			formatFloat(lt.Position.Y),
			formatFloat(lt.Position.Z),
		})
	}
	return t.Render()
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}
