package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestOffsetTranslationSwapsYZ(t *testing.T) {
	o := NewOffset([]float64{1, 2, 3}, []float64{0, 0, 0})
	test.That(t, TranslationOf(o.Translation()), test.ShouldResemble, mgl64.Vec3{1, 3, 2})
	test.That(t, o.Rotation(), test.ShouldResemble, mgl64.Ident4())
	test.That(t, FromRenderFrame(ToRenderFrame(o.XYZ)), test.ShouldResemble, o.XYZ)
}

func TestOffsetMatchesConjugatedDescriptionTransform(t *testing.T) {
	for _, o := range []Offset{
		NewOffset([]float64{0.1, -0.2, 0.3}, []float64{0.4, 0, 0}),
		NewOffset([]float64{0, 0, 0}, []float64{0, 0.5, 0}),
		NewOffset([]float64{0, 0, 0}, []float64{0, 0, -1.2}),
		NewOffset([]float64{1, 2, 3}, []float64{0.3, -0.7, 2.1}),
	} {
		description := mgl64.Translate3D(o.XYZ.X, o.XYZ.Y, o.XYZ.Z).Mul4(o.RPY.RotationMatrix())
		test.That(t, Mat4AlmostEqual(o.Transform(), ConjugateToRenderFrame(description), 1e-12), test.ShouldBeTrue)
	}
}

func TestYawTurnsAboutRenderUp(t *testing.T) {
	// A quarter turn of yaw in the description frame takes +x to +y. In the render frame +y is
	// stored as +z, and the render up axis (y) is unchanged.
	o := Offset{RPY: EulerAngles{Yaw: math.Pi / 2}}
	moved := o.Rotation().Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	test.That(t, Vec3AlmostEqual(moved, ToRenderFrame(r3.Vector{Y: 1}), 1e-12), test.ShouldBeTrue)
	up := o.Rotation().Mul4x1(mgl64.Vec4{0, 1, 0, 0}).Vec3()
	test.That(t, Vec3AlmostEqual(up, mgl64.Vec3{0, 1, 0}, 1e-12), test.ShouldBeTrue)
}

func TestAxisRotation(t *testing.T) {
	test.That(t, AxisRotation(1, r3.Vector{}), test.ShouldResemble, mgl64.Ident4())
	test.That(t, AxisRotation(0, r3.Vector{Y: 1}), test.ShouldResemble, mgl64.Ident4())

	// Spinning about the description y axis must agree with conjugating the plain rotation.
	angle := 0.8
	expected := ConjugateToRenderFrame(mgl64.HomogRotate3DY(angle))
	test.That(t, Mat4AlmostEqual(AxisRotation(angle, r3.Vector{Y: 2}), expected, 1e-12), test.ShouldBeTrue)
}

func TestAlmostEqualNearZero(t *testing.T) {
	nudged := mgl64.Ident4()
	nudged[4] = 1e-17
	test.That(t, Mat4AlmostEqual(mgl64.Ident4(), nudged, 1e-9), test.ShouldBeTrue)
	nudged[4] = 1e-3
	test.That(t, Mat4AlmostEqual(mgl64.Ident4(), nudged, 1e-9), test.ShouldBeFalse)

	test.That(t, Vec3AlmostEqual(mgl64.Vec3{6.1e-17, 0, 1}, mgl64.Vec3{0, 0, 1}, 1e-12), test.ShouldBeTrue)
	test.That(t, Vec3AlmostEqual(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1e-6, 1}, 1e-9), test.ShouldBeFalse)
}

func TestScale(t *testing.T) {
	s := Scale(mgl64.Vec3{0.4, 0.1, 0.2})
	p := s.Mul4x1(mgl64.Vec4{1, 1, 1, 1}).Vec3()
	test.That(t, Vec3AlmostEqual(p, mgl64.Vec3{0.4, 0.1, 0.2}, 1e-12), test.ShouldBeTrue)
	test.That(t, TranslationOf(s), test.ShouldResemble, mgl64.Vec3{0, 0, 0})
}

func TestPose2D(t *testing.T) {
	p := Pose2D{X: 1, Y: 2, Theta: 0.5}
	o := p.Offset()
	test.That(t, o.XYZ, test.ShouldResemble, r3.Vector{X: 1, Y: 2})
	test.That(t, o.RPY.Yaw, test.ShouldEqual, 0.5)

	test.That(t, p.AlmostEqual(Pose2D{X: 1, Y: 2, Theta: 0.5 + 2*math.Pi}, 1e-9), test.ShouldBeTrue)
	test.That(t, Pose2D{Theta: 1e-12}.AlmostEqual(Pose2D{Theta: 2*math.Pi - 1e-12}, 1e-9), test.ShouldBeTrue)
	test.That(t, p.AlmostEqual(Pose2D{X: 1.1, Y: 2, Theta: 0.5}, 1e-9), test.ShouldBeFalse)
	test.That(t, p.String(), test.ShouldEqual, "x=1.0000 y=2.0000 θ=0.5000")
}
