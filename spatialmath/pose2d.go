package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/robotsim/utils"
)

// Pose2D is a planar pose on the ground plane of the description frame: x forward, y left,
// theta counter-clockwise about +z in [0, 2π).
type Pose2D struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// Offset lifts the planar pose into a full offset (z = 0, yaw = theta).
func (p Pose2D) Offset() Offset {
	return Offset{
		XYZ: r3.Vector{X: p.X, Y: p.Y},
		RPY: EulerAngles{Yaw: p.Theta},
	}
}

// AlmostEqual compares positions within epsilon and headings modulo 2π within epsilon.
func (p Pose2D) AlmostEqual(other Pose2D, epsilon float64) bool {
	return utils.Float64AlmostEqual(p.X, other.X, epsilon) &&
		utils.Float64AlmostEqual(p.Y, other.Y, epsilon) &&
		utils.AngleDiffRad(p.Theta, other.Theta) <= epsilon
}

func (p Pose2D) String() string {
	return fmt.Sprintf("x=%.4f y=%.4f θ=%.4f", p.X, p.Y, p.Theta)
}
