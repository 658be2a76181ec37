package referenceframe

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/robotsim/referenceframe/urdf"
)

// Shape is the visual shape of a link. It is one of Box, Cylinder or Sphere.
type Shape interface {
	Kind() urdf.ShapeKind
	// Scale stretches the unit mesh of the shape to its real size, in the render frame.
	Scale() mgl64.Vec3
	fmt.Stringer
}

// Box is a cuboid with Length along x, Width along y and Height along z.
type Box struct {
	Length float64
	Width  float64
	Height float64
}

// Kind implements Shape.
func (b Box) Kind() urdf.ShapeKind { return urdf.ShapeBox }

// Scale implements Shape. Height becomes the render up axis.
func (b Box) Scale() mgl64.Vec3 { return mgl64.Vec3{b.Length, b.Height, b.Width} }

func (b Box) String() string {
	return fmt.Sprintf("box %gx%gx%g", b.Length, b.Width, b.Height)
}

// Cylinder has its axis along z.
type Cylinder struct {
	Radius float64
	Length float64
}

// Kind implements Shape.
func (c Cylinder) Kind() urdf.ShapeKind { return urdf.ShapeCylinder }

// Scale implements Shape.
func (c Cylinder) Scale() mgl64.Vec3 { return mgl64.Vec3{2 * c.Radius, c.Length, 2 * c.Radius} }

func (c Cylinder) String() string {
	return fmt.Sprintf("cylinder r=%g l=%g", c.Radius, c.Length)
}

// Sphere is centered on its link origin.
type Sphere struct {
	Radius float64
}

// Kind implements Shape.
func (s Sphere) Kind() urdf.ShapeKind { return urdf.ShapeSphere }

// Scale implements Shape.
func (s Sphere) Scale() mgl64.Vec3 { return mgl64.Vec3{2 * s.Radius, 2 * s.Radius, 2 * s.Radius} }

func (s Sphere) String() string {
	return fmt.Sprintf("sphere r=%g", s.Radius)
}

// NewShape converts parsed geometry into a Shape.
func NewShape(g urdf.Geometry) (Shape, error) {
	switch g.Kind {
	case urdf.ShapeBox:
		return Box{Length: g.Length, Width: g.Width, Height: g.Height}, nil
	case urdf.ShapeCylinder:
		return Cylinder{Radius: g.Radius, Length: g.Length}, nil
	case urdf.ShapeSphere:
		return Sphere{Radius: g.Radius}, nil
	default:
		return nil, urdf.NewMalformedDescriptionError("unsupported shape %q", g.Kind)
	}
}

// Radius returns the radius of round shapes. Boxes have none.
func Radius(s Shape) (float64, bool) {
	switch v := s.(type) {
	case Cylinder:
		return v.Radius, true
	case Sphere:
		return v.Radius, true
	default:
		return 0, false
	}
}
