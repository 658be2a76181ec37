package referenceframe

import (
	"go.uber.org/multierr"
)

// Model is the kinematic tree of a robot. It owns every link and joint in flat slices indexed by
// LinkID and JointID; the tree exists only as the parent and child IDs stored on joints.
type Model struct {
	name       string
	links      []*Link
	joints     []*Joint
	linkIndex  map[string]LinkID
	jointIndex map[string]JointID
	base       LinkID
	wheels     []JointID
}

// Name returns the robot name from the description.
func (m *Model) Name() string { return m.name }

// Link returns the link with the given ID.
func (m *Model) Link(id LinkID) *Link { return m.links[id] }

// Joint returns the joint with the given ID.
func (m *Model) Joint(id JointID) *Joint { return m.joints[id] }

// Links returns all links in declaration order.
func (m *Model) Links() []*Link { return m.links }

// Joints returns all joints in declaration order.
func (m *Model) Joints() []*Joint { return m.joints }

// Base returns the root of the tree.
func (m *Model) Base() *Link { return m.links[m.base] }

// Wheels returns the continuous joints collected in differential-drive mode, in declaration order.
func (m *Model) Wheels() []*Joint {
	wheels := make([]*Joint, 0, len(m.wheels))
	for _, id := range m.wheels {
		wheels = append(wheels, m.joints[id])
	}
	return wheels
}

// LinkByName looks a link up by name.
func (m *Model) LinkByName(name string) (*Link, bool) {
	id, ok := m.linkIndex[name]
	if !ok {
		return nil, false
	}
	return m.links[id], true
}

// JointByName looks a joint up by name.
func (m *Model) JointByName(name string) (*Joint, bool) {
	id, ok := m.jointIndex[name]
	if !ok {
		return nil, false
	}
	return m.joints[id], true
}

// Close releases every link's mesh. A mesh released twice reports an error, so Close must only be
// called once.
func (m *Model) Close() error {
	var err error
	for _, link := range m.links {
		if link.mesh != nil {
			err = multierr.Combine(err, link.mesh.Close())
		}
	}
	return err
}
