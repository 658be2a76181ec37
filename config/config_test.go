package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/utils"
)

func TestFromReaderValidate(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	_, err := FromReader(ctx, "", strings.NewReader(""), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = FromReader(ctx, "", strings.NewReader(`{"description": 1}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unmarshal")

	_, err = FromReader(ctx, "", strings.NewReader(`{}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"description" is required`)

	_, err = FromReader(ctx, "", strings.NewReader(`{"description": "robot.sdf"}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `error validating "description"`)

	_, err = FromReader(ctx, "", strings.NewReader(`{"description": "robot.urdf", "time_step": -1}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `error validating "time_step"`)

	conf, err := FromReader(ctx, "", strings.NewReader(`{"description": "robot.xacro"}`), logger)
	test.That(t, err, test.ShouldBeNil)
	enabled := true
	test.That(t, conf, test.ShouldResemble, &Config{
		Description:       "robot.xacro",
		Xacro:             XacroConfig{Command: "xacro"},
		TimeStep:          DefaultTimeStep,
		DifferentialDrive: &enabled,
	})
	test.That(t, conf.DifferentialDriveEnabled(), test.ShouldBeTrue)

	conf, err = FromReader(ctx, "", strings.NewReader(`{"description": "robot.urdf", "differential_drive": false}`), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.DifferentialDriveEnabled(), test.ShouldBeFalse)
}

func TestFromReaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FromReader(ctx, "", strings.NewReader(`{"description": "robot.urdf"}`), logging.NewTestLogger(t))
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestRead(t *testing.T) {
	t.Setenv("ROBOTSIM_MESH_DIR", "/opt/robotsim/models")
	path := utils.ResolveFile("config/data/two_wheel.json")

	conf, err := Read(context.Background(), path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, conf.Description, test.ShouldEqual, utils.ResolveFile("referenceframe/testurdf/two_wheel.urdf"))
	test.That(t, conf.MeshDir, test.ShouldEqual, "/opt/robotsim/models")
	test.That(t, conf.TimeStep, test.ShouldEqual, 0.5)
	test.That(t, conf.Xacro, test.ShouldResemble, XacroConfig{Command: "xacro", Args: []string{"use_caster:=true"}})

	_, err = Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNew(t *testing.T) {
	cfg := New("robot.urdf")
	test.That(t, cfg.Validate("robot"), test.ShouldBeNil)
	test.That(t, cfg.TimeStep, test.ShouldEqual, DefaultTimeStep)
	test.That(t, cfg.Xacro.Command, test.ShouldEqual, "xacro")
	test.That(t, cfg.DifferentialDriveEnabled(), test.ShouldBeTrue)

	cfg.Description = ""
	err := cfg.Validate("robot")
	test.That(t, err.Error(), test.ShouldContainSubstring, `error validating "robot"`)
}
