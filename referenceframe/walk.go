package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/robotsim/spatialmath"
)

// JointState is the user-controlled state of a joint: an extra roll/pitch/yaw applied at the joint
// and, for continuous joints, the current spin angle about the joint axis.
type JointState struct {
	RPY   spatialmath.EulerAngles
	Angle float64
}

// Transform returns the rotation the state adds on top of joint's fixed offset.
func (s JointState) Transform(joint *Joint) mgl64.Mat4 {
	m := spatialmath.Offset{RPY: s.RPY}.Rotation()
	if joint.IsContinuous() {
		m = m.Mul4(spatialmath.AxisRotation(s.Angle, joint.axis))
	}
	return m
}

// Visitor is called once per link during Walk. frame is the link's world frame; draw additionally
// carries the link's scale and is the transform its mesh is drawn with.
type Visitor func(link *Link, frame, draw mgl64.Mat4) error

// Walk visits every link depth-first, base link first, with its world transform. placement
// positions the base link in the world. states is indexed by JointID; missing entries mean the
// zero state. Walk never modifies the model.
func (m *Model) Walk(placement mgl64.Mat4, states []JointState, visit Visitor) error {
	return m.walkLink(m.base, placement, states, visit)
}

func (m *Model) walkLink(id LinkID, parentFrame mgl64.Mat4, states []JointState, visit Visitor) error {
	link := m.links[id]
	frame := parentFrame.Mul4(link.LocalTransform())
	if err := visit(link, frame, frame.Mul4(link.ScaleTransform())); err != nil {
		return err
	}

	for _, jid := range link.joints {
		joint := m.joints[jid]
		if joint.child == id {
			continue
		}
		jointFrame := frame.Mul4(joint.LocalTransform())
		if int(jid) < len(states) {
			jointFrame = jointFrame.Mul4(states[jid].Transform(joint))
		}
		if err := m.walkLink(joint.child, jointFrame, states, visit); err != nil {
			return err
		}
	}
	return nil
}

// WorldTransforms returns the unscaled world frame of every link, keyed by link name.
func (m *Model) WorldTransforms(placement mgl64.Mat4, states []JointState) map[string]mgl64.Mat4 {
	frames := make(map[string]mgl64.Mat4, len(m.links))
	//nolint:errcheck
	m.Walk(placement, states, func(link *Link, frame, _ mgl64.Mat4) error {
		frames[link.name] = frame
		return nil
	})
	return frames
}
