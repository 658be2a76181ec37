// Package robot holds a loaded robot: its kinematic tree, its planar pose and the inputs applied to
// its wheels. A GUI or CLI drives it through ApplyInputs and draws it with Draw.
package robot

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/robotsim/components/base/wheeled"
	"go.viam.com/robotsim/config"
	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/referenceframe"
	"go.viam.com/robotsim/spatialmath"
	"go.viam.com/robotsim/referenceframe/urdf"
	"go.viam.com/robotsim/utils"
)

// A Renderer draws one link mesh with the given model matrix.
type Renderer interface {
	DrawMesh(link *referenceframe.Link, model mgl64.Mat4) error
}

// WheelInput is the raw text a user typed for one wheel. Blank or malformed fields count as 0.
type WheelInput struct {
	Speed string
	Roll  string
	Pitch string
	Yaw   string
}

// LinkTransform is the world placement of one link.
type LinkTransform struct {
	Name string
	// Frame is the unscaled world transform in the render frame.
	Frame mgl64.Mat4
	// Position is the link origin in description coordinates.
	Position r3.Vector
}

// Robot is a loaded robot description plus its mutable drive state. It is not safe for
// concurrent use; all calls are expected from the single UI thread.
type Robot struct {
	logger     logging.Logger
	model      *referenceframe.Model
	kinematics *wheeled.Kinematics
	timeStep   float64

	pose   spatialmath.Pose2D
	speeds []float64
	states []referenceframe.JointState
}

// New loads the description named by cfg and builds the robot.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Robot, error) {
	expander := urdf.NewXacroExpander(cfg.Xacro.Command, cfg.Xacro.Args, logger.Sublogger("xacro"))
	desc, err := urdf.Load(ctx, cfg.Description, expander, logger)
	if err != nil {
		return nil, err
	}

	opts := []referenceframe.BuildOption{referenceframe.WithDifferentialDrive(cfg.DifferentialDriveEnabled())}
	if cfg.MeshDir != "" {
		opts = append(opts, referenceframe.WithMeshLoader(spatialmath.DirMeshLoader{Dir: cfg.MeshDir}))
	}
	model, err := referenceframe.Build(desc, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build robot from %s", cfg.Description)
	}

	timeStep := cfg.TimeStep
	if timeStep == 0 {
		timeStep = config.DefaultTimeStep
	}
	return NewFromModel(model, timeStep, logger), nil
}

// NewFromModel wraps an already built model. The robot starts at the origin with every wheel stopped.
func NewFromModel(model *referenceframe.Model, timeStep float64, logger logging.Logger) *Robot {
	r := &Robot{
		logger:   logger,
		model:    model,
		timeStep: timeStep,
		speeds:   make([]float64, len(model.Wheels())),
		states:   make([]referenceframe.JointState, len(model.Joints())),
	}
	k, ok := wheeled.NewKinematics(model)
	if ok {
		r.kinematics = k
		logger.Debugw("differential drive enabled",
			"left", k.Left().Name, "right", k.Right().Name, "half_track", k.HalfTrack())
	} else if len(model.Wheels()) > 0 {
		logger.Infow("robot has wheels but cannot be driven", "wheels", len(model.Wheels()))
	}
	return r
}

// Model returns the kinematic tree.
func (r *Robot) Model() *referenceframe.Model {
	return r.model
}

// Drivable reports whether Move changes the pose.
func (r *Robot) Drivable() bool {
	return r.kinematics != nil
}

// Pose returns the planar pose of the robot.
func (r *Robot) Pose() spatialmath.Pose2D {
	return r.pose
}

// SetPose teleports the robot.
func (r *Robot) SetPose(pose spatialmath.Pose2D) {
	pose.Theta = utils.WrapRadians(pose.Theta)
	r.pose = pose
}

// TimeStep is the number of seconds each Move integrates.
func (r *Robot) TimeStep() float64 {
	return r.timeStep
}

// WheelNames returns the wheel joint names in input order.
func (r *Robot) WheelNames() []string {
	wheels := r.model.Wheels()
	names := make([]string, 0, len(wheels))
	for _, w := range wheels {
		names = append(names, w.Name())
	}
	return names
}

// WheelSpeeds returns the current wheel speeds in radians per second.
func (r *Robot) WheelSpeeds() []float64 {
	return append([]float64(nil), r.speeds...)
}

// JointStates returns a copy of the per-joint states, indexed by JointID.
func (r *Robot) JointStates() []referenceframe.JointState {
	return append([]referenceframe.JointState(nil), r.states...)
}

func (r *Robot) checkWheel(i int) error {
	if i < 0 || i >= len(r.speeds) {
		return errors.Errorf("wheel index %d out of range, robot has %d wheels", i, len(r.speeds))
	}
	return nil
}

// SetWheelSpeed sets the speed of wheel i in radians per second.
func (r *Robot) SetWheelSpeed(i int, speed float64) error {
	if err := r.checkWheel(i); err != nil {
		return err
	}
	r.speeds[i] = speed
	return nil
}

// SetWheelRotation sets the extra roll/pitch/yaw applied at wheel i's joint.
func (r *Robot) SetWheelRotation(i int, rpy spatialmath.EulerAngles) error {
	if err := r.checkWheel(i); err != nil {
		return err
	}
	r.states[r.model.Wheels()[i].ID()].RPY = rpy
	return nil
}

// UpdateValues sets rotations and speeds for the first len(rotations) and len(speeds) wheels.
func (r *Robot) UpdateValues(rotations []spatialmath.EulerAngles, speeds []float64) error {
	if len(rotations) > len(r.speeds) || len(speeds) > len(r.speeds) {
		return errors.Errorf("got %d rotations and %d speeds for %d wheels", len(rotations), len(speeds), len(r.speeds))
	}
	for i, rpy := range rotations {
		if err := r.SetWheelRotation(i, rpy); err != nil {
			return err
		}
	}
	for i, speed := range speeds {
		if err := r.SetWheelSpeed(i, speed); err != nil {
			return err
		}
	}
	return nil
}

// Move drives the robot for one time step at the current wheel speeds and spins the wheels
// accordingly. It does nothing when the robot cannot be driven.
func (r *Robot) Move() {
	if r.kinematics == nil {
		return
	}
	r.pose = r.kinematics.Step(r.pose, [2]float64{r.speeds[0], r.speeds[1]}, r.timeStep)
	for i, w := range r.model.Wheels() {
		state := &r.states[w.ID()]
		state.Angle = utils.WrapRadians(state.Angle + r.speeds[i]*r.timeStep)
	}
	r.logger.Debugw("moved", "pose", r.pose.String(), "speeds", r.speeds)
}

// ApplyInputs parses one input per wheel, updates the wheels and moves one step.
func (r *Robot) ApplyInputs(inputs []WheelInput) error {
	speeds := make([]float64, 0, len(inputs))
	rotations := make([]spatialmath.EulerAngles, 0, len(inputs))
	for _, in := range inputs {
		speeds = append(speeds, utils.ParseFloatOrZero(in.Speed))
		rotations = append(rotations, spatialmath.NewEulerAngles(
			utils.ParseFloatsOrZero([]string{in.Roll, in.Pitch, in.Yaw})))
	}
	if err := r.UpdateValues(rotations, speeds); err != nil {
		return err
	}
	r.Move()
	return nil
}

// placement is the world transform the base link hangs from.
func (r *Robot) placement() mgl64.Mat4 {
	return r.pose.Offset().Transform()
}

// BasePosition returns the world position of the base link in description coordinates.
func (r *Robot) BasePosition() r3.Vector {
	frame := r.placement().Mul4(r.model.Base().LocalTransform())
	return spatialmath.FromRenderFrame(spatialmath.TranslationOf(frame))
}

// Readout is the one-line position summary shown next to the inputs.
func (r *Robot) Readout() string {
	p := r.BasePosition()
	return fmt.Sprintf("Position: x=%.2f y=%.2f z=%.2f θ=%.2f", p.X, p.Y, p.Z, r.pose.Theta)
}

// Transforms returns the world placement of every link, base link first.
func (r *Robot) Transforms() []LinkTransform {
	transforms := make([]LinkTransform, 0, len(r.model.Links()))
	//nolint:errcheck
	r.model.Walk(r.placement(), r.states, func(link *referenceframe.Link, frame, _ mgl64.Mat4) error {
		transforms = append(transforms, LinkTransform{
			Name:     link.Name(),
			Frame:    frame,
			Position: spatialmath.FromRenderFrame(spatialmath.TranslationOf(frame)),
		})
		return nil
	})
	return transforms
}

// Draw hands every link to renderer with the transform its mesh is drawn with.
func (r *Robot) Draw(renderer Renderer) error {
	return r.model.Walk(r.placement(), r.states, func(link *referenceframe.Link, _, draw mgl64.Mat4) error {
		return renderer.DrawMesh(link, draw)
	})
}

// Close releases the meshes of every link.
func (r *Robot) Close() error {
	return r.model.Close()
}
