// Package spatialmath converts robot description geometry into the 4x4 transforms used for
// drawing, and loads the OBJ meshes drawn for each link.
//
// Robot descriptions are z-up; the render frame is y-up. Moving between the two swaps the y and
// z axes. The swap is applied as a conjugation (P * M * P with P the swap matrix), so a rotation
// in the description frame stays a proper rotation in the render frame.
package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/robotsim/utils"
)

// axisSwap is P, the permutation exchanging y and z. It is its own inverse.
var axisSwap = mgl64.Mat4{
	1, 0, 0, 0,
	0, 0, 1, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// ToRenderFrame maps a point or direction from the description frame into the render frame.
func ToRenderFrame(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Z, v.Y}
}

// FromRenderFrame is the inverse of ToRenderFrame.
func FromRenderFrame(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[2], Z: v[1]}
}

// ConjugateToRenderFrame expresses a description-frame transform in the render frame.
func ConjugateToRenderFrame(m mgl64.Mat4) mgl64.Mat4 {
	return axisSwap.Mul4(m).Mul4(axisSwap)
}

// Offset is a translation plus fixed-axis rotation, as carried by URDF <origin> elements.
type Offset struct {
	XYZ r3.Vector   `json:"xyz"`
	RPY EulerAngles `json:"rpy"`
}

// NewOffset returns an Offset from xyz and rpy slices of length 3.
func NewOffset(xyz, rpy []float64) Offset {
	o := Offset{RPY: NewEulerAngles(rpy)}
	if len(xyz) == 3 {
		o.XYZ = r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	return o
}

// Translation returns the render-frame translation, with the y and z components exchanged.
func (o Offset) Translation() mgl64.Mat4 {
	t := ToRenderFrame(o.XYZ)
	return mgl64.Translate3D(t[0], t[1], t[2])
}

// Rotation returns the render-frame rotation. Conjugating Rz(yaw)Ry(pitch)Rx(roll) by the axis
// swap gives Ry(-yaw)Rz(-pitch)Rx(-roll): roll stays on x while pitch and yaw trade axes.
func (o Offset) Rotation() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(-o.RPY.Yaw).
		Mul4(mgl64.HomogRotate3DZ(-o.RPY.Pitch)).
		Mul4(mgl64.HomogRotate3DX(-o.RPY.Roll))
}

// Transform returns Translation * Rotation, the offset's local transform.
func (o Offset) Transform() mgl64.Mat4 {
	return o.Translation().Mul4(o.Rotation())
}

func (o Offset) String() string {
	return fmt.Sprintf("xyz=(%.4g %.4g %.4g) rpy=(%s)", o.XYZ.X, o.XYZ.Y, o.XYZ.Z, o.RPY)
}

// Scale returns a pure scale transform. Scales are only ever applied to a link's own mesh and
// never folded into the frames handed down to children.
func Scale(v mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(v[0], v[1], v[2])
}

// AxisRotation returns the render-frame rotation of angle radians about a description-frame axis.
// A zero axis yields the identity.
func AxisRotation(angle float64, axis r3.Vector) mgl64.Mat4 {
	if axis.Norm() == 0 || angle == 0 {
		return mgl64.Ident4()
	}
	// The swap reverses handedness, so the angle flips sign once the axis is moved across.
	return mgl64.HomogRotate3D(-angle, ToRenderFrame(axis.Normalize()))
}

// Mat4AlmostEqual compares two matrices element-wise within an absolute epsilon.
func Mat4AlmostEqual(a, b mgl64.Mat4, epsilon float64) bool {
	for i := range a {
		if !utils.Float64AlmostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// Vec3AlmostEqual compares two vectors element-wise within an absolute epsilon.
func Vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	for i := range a {
		if !utils.Float64AlmostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// TranslationOf returns the translation column of a transform in the render frame.
func TranslationOf(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}
