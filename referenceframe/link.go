package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/robotsim/spatialmath"
	"go.viam.com/robotsim/referenceframe/urdf"
)

// LinkID addresses a link inside its Model.
type LinkID int

// JointID addresses a joint inside its Model.
type JointID int

// NoJoint is the parent joint of the base link.
const NoJoint JointID = -1

// Renderable is anything placed by a local transform and drawn with a named mesh.
type Renderable interface {
	LocalTransform() mgl64.Mat4
	MeshKey() string
}

// Link is a rigid body of the robot.
type Link struct {
	id          LinkID
	name        string
	shape       Shape
	origin      spatialmath.Offset
	material    string
	color       urdf.Color
	parentJoint JointID
	joints      []JointID
	isBase      bool
	mesh        *spatialmath.Mesh
}

// ID returns the index of the link in its model.
func (l *Link) ID() LinkID { return l.id }

// Name returns the unique name of the link.
func (l *Link) Name() string { return l.name }

// Shape returns the visual shape of the link.
func (l *Link) Shape() Shape { return l.shape }

// Origin returns the offset of the link's visual from its parent joint frame.
func (l *Link) Origin() spatialmath.Offset { return l.origin }

// Material returns the material name the link was declared with.
func (l *Link) Material() string { return l.material }

// Color returns the display color of the link.
func (l *Link) Color() urdf.Color { return l.color }

// ParentJoint returns the joint whose child this link is, or NoJoint for the base link.
func (l *Link) ParentJoint() JointID { return l.parentJoint }

// ConnectedJoints returns every joint that has this link as its parent or child, in declaration order.
func (l *Link) ConnectedJoints() []JointID { return l.joints }

// IsBase reports whether the link is the root of the tree.
func (l *Link) IsBase() bool { return l.isBase }

// Mesh returns the mesh loaded for the link, or nil when the model was built without meshes.
func (l *Link) Mesh() *spatialmath.Mesh { return l.mesh }

// LocalTransform implements Renderable: the origin translation followed by its rotation, without scale.
func (l *Link) LocalTransform() mgl64.Mat4 { return l.origin.Transform() }

// ScaleTransform stretches the unit mesh to the link's size. It applies only to this link's mesh.
func (l *Link) ScaleTransform() mgl64.Mat4 { return spatialmath.Scale(l.shape.Scale()) }

// MeshKey implements Renderable. Every shape kind shares one unit mesh.
func (l *Link) MeshKey() string { return string(l.shape.Kind()) }

// Joint connects a parent link to a child link.
type Joint struct {
	id        JointID
	name      string
	jointType urdf.JointType
	parent    LinkID
	child     LinkID
	origin    spatialmath.Offset
	axis      r3.Vector
}

// ID returns the index of the joint in its model.
func (j *Joint) ID() JointID { return j.id }

// Name returns the unique name of the joint.
func (j *Joint) Name() string { return j.name }

// Type returns the kinematic type of the joint.
func (j *Joint) Type() urdf.JointType { return j.jointType }

// IsContinuous reports whether the joint spins freely, like a wheel axle.
func (j *Joint) IsContinuous() bool { return j.jointType == urdf.JointContinuous }

// Parent returns the link the joint hangs from.
func (j *Joint) Parent() LinkID { return j.parent }

// Child returns the link the joint carries.
func (j *Joint) Child() LinkID { return j.child }

// Origin returns the offset of the child frame from the parent link frame.
func (j *Joint) Origin() spatialmath.Offset { return j.origin }

// Axis returns the spin axis of the joint in its own frame.
func (j *Joint) Axis() r3.Vector { return j.axis }

// LocalTransform implements Renderable.
func (j *Joint) LocalTransform() mgl64.Mat4 { return j.origin.Transform() }

// MeshKey implements Renderable. Joints are not drawn.
func (j *Joint) MeshKey() string { return "" }
