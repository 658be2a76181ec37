// Package wheeled implements differential-drive kinematics for robots with two driven wheels.
package wheeled

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/robotsim/referenceframe"
	"go.viam.com/robotsim/spatialmath"
	"go.viam.com/robotsim/utils"
)

// Wheel is a driven wheel: a continuous joint whose child link is round.
type Wheel struct {
	Joint  referenceframe.JointID
	Name   string
	Radius float64
	// Position is the wheel center relative to the robot origin, base offset included.
	Position r3.Vector
}

// Kinematics converts wheel speeds into planar motion of a two-wheeled robot.
// Wheel speeds are in radians per second and always given in the order of Model.Wheels.
type Kinematics struct {
	wheels    [2]Wheel
	rightIdx  int
	leftIdx   int
	halfTrack float64
}

// NewKinematics derives drive kinematics from model. ok is false when the robot cannot be driven:
// it does not have exactly two wheels, a wheel's link has no radius, or both wheels sit at the
// same point.
func NewKinematics(model *referenceframe.Model) (*Kinematics, bool) {
	joints := model.Wheels()
	if len(joints) != 2 {
		return nil, false
	}

	base := model.Base().Origin().XYZ
	k := &Kinematics{}
	for i, j := range joints {
		radius, ok := referenceframe.Radius(model.Link(j.Child()).Shape())
		if !ok || radius <= 0 {
			return nil, false
		}
		k.wheels[i] = Wheel{
			Joint:    j.ID(),
			Name:     j.Name(),
			Radius:   radius,
			Position: base.Add(j.Origin().XYZ),
		}
	}

	k.halfTrack = k.wheels[0].Position.Distance(k.wheels[1].Position) / 2
	if k.halfTrack == 0 {
		return nil, false
	}

	// +y is left. Wheels level with each other keep declaration order: the first is the right wheel.
	k.rightIdx, k.leftIdx = 0, 1
	if k.wheels[0].Position.Y > k.wheels[1].Position.Y {
		k.rightIdx, k.leftIdx = 1, 0
	}
	return k, true
}

// HalfTrack is half the distance between the wheel centers.
func (k *Kinematics) HalfTrack() float64 {
	return k.halfTrack
}

// Left returns the wheel on the +y side.
func (k *Kinematics) Left() Wheel {
	return k.wheels[k.leftIdx]
}

// Right returns the wheel on the -y side.
func (k *Kinematics) Right() Wheel {
	return k.wheels[k.rightIdx]
}

// Velocities returns the body-frame forward velocity xR, lateral velocity yR (always 0) and the
// angular velocity omega produced by speeds.
func (k *Kinematics) Velocities(speeds [2]float64) (xR, yR, omega float64) {
	for i, w := range k.wheels {
		xR += 0.5 * w.Radius * speeds[i]
	}
	right, left := k.wheels[k.rightIdx], k.wheels[k.leftIdx]
	omega = right.Radius*speeds[k.rightIdx]/(2*k.halfTrack) - left.Radius*speeds[k.leftIdx]/(2*k.halfTrack)
	return xR, 0, omega
}

// Step returns the pose reached from pose after driving at speeds for dt seconds. The robot
// follows the exact circular arc of constant xR and omega, so driving back at negated speeds for
// the same dt returns to the starting pose.
func (k *Kinematics) Step(pose spatialmath.Pose2D, speeds [2]float64, dt float64) spatialmath.Pose2D {
	xR, yR, omega := k.Velocities(speeds)

	var dx, dy float64
	if utils.Float64AlmostEqual(omega, 0, utils.FloatTolerance*utils.FloatTolerance) {
		dx, dy = xR*dt, yR*dt
	} else {
		turned := omega * dt
		dx = xR / omega * math.Sin(turned)
		dy = xR / omega * (1 - math.Cos(turned))
	}

	sin, cos := math.Sincos(pose.Theta)
	return spatialmath.Pose2D{
		X:     pose.X + cos*dx - sin*dy,
		Y:     pose.Y + sin*dx + cos*dy,
		Theta: utils.WrapRadians(pose.Theta + omega*dt),
	}
}
