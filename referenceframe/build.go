package referenceframe

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/robotsim/spatialmath"
	"go.viam.com/robotsim/referenceframe/urdf"
)

// maxWheels is the number of continuous joints a differential-drive robot may have.
const maxWheels = 2

type buildOptions struct {
	meshLoader        spatialmath.MeshLoader
	differentialDrive bool
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithMeshLoader loads one mesh per link while building. Without it links carry no mesh.
func WithMeshLoader(loader spatialmath.MeshLoader) BuildOption {
	return func(o *buildOptions) {
		o.meshLoader = loader
	}
}

// WithDifferentialDrive collects continuous joints as driven wheels and rejects more than two.
func WithDifferentialDrive(enabled bool) BuildOption {
	return func(o *buildOptions) {
		o.differentialDrive = enabled
	}
}

// Build turns parsed description records into a Model. Names are resolved once, here; after
// Build every joint refers to its links by ID.
func Build(desc *urdf.Description, opts ...BuildOption) (*Model, error) {
	var options buildOptions
	for _, opt := range opts {
		opt(&options)
	}

	m := &Model{
		name:       desc.Name,
		links:      make([]*Link, 0, len(desc.Links)),
		joints:     make([]*Joint, 0, len(desc.Joints)),
		linkIndex:  make(map[string]LinkID, len(desc.Links)),
		jointIndex: make(map[string]JointID, len(desc.Joints)),
		base:       -1,
	}
	for _, rec := range desc.Links {
		if _, dup := m.linkIndex[rec.Name]; dup {
			return nil, urdf.NewMalformedDescriptionError("duplicate link name %q", rec.Name)
		}
		shape, err := NewShape(rec.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "link %q", rec.Name)
		}
		id := LinkID(len(m.links))
		m.links = append(m.links, &Link{
			id:          id,
			name:        rec.Name,
			shape:       shape,
			origin:      rec.Origin,
			material:    rec.Material,
			color:       rec.Color,
			parentJoint: NoJoint,
		})
		m.linkIndex[rec.Name] = id
	}

	if err := m.resolveBaseLink(desc.Joints); err != nil {
		return nil, err
	}
	if err := m.resolveJoints(desc.Joints); err != nil {
		return nil, err
	}
	if err := m.validateTree(); err != nil {
		return nil, err
	}
	if options.differentialDrive {
		if err := m.collectWheels(); err != nil {
			return nil, err
		}
	}
	if options.meshLoader != nil {
		if err := m.loadMeshes(options.meshLoader); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// resolveBaseLink picks the only link that is never a joint's child.
func (m *Model) resolveBaseLink(joints []urdf.JointRecord) error {
	linkNames := lo.Map(m.links, func(l *Link, _ int) string { return l.name })
	childNames := lo.Map(joints, func(j urdf.JointRecord, _ int) string { return j.Child })
	candidates := lo.Without(linkNames, childNames...)
	if len(candidates) != 1 {
		return NewAmbiguousOrMissingBaseLinkError(candidates)
	}

	base := m.links[m.linkIndex[candidates[0]]]
	if base.shape.Kind() != urdf.ShapeBox {
		return NewInvalidBaseLinkShapeError(base.name, base.shape.Kind())
	}
	base.isBase = true
	m.base = base.id
	return nil
}

// resolveJoints replaces link names with IDs and fills in each link's connected joints.
func (m *Model) resolveJoints(records []urdf.JointRecord) error {
	for _, rec := range records {
		if _, dup := m.jointIndex[rec.Name]; dup {
			return urdf.NewMalformedDescriptionError("duplicate joint name %q", rec.Name)
		}
		parent, ok := m.linkIndex[rec.Parent]
		if !ok {
			return NewDanglingReferenceError(rec.Name, rec.Parent)
		}
		child, ok := m.linkIndex[rec.Child]
		if !ok {
			return NewDanglingReferenceError(rec.Name, rec.Child)
		}

		id := JointID(len(m.joints))
		m.joints = append(m.joints, &Joint{
			id:        id,
			name:      rec.Name,
			jointType: rec.Type,
			parent:    parent,
			child:     child,
			origin:    rec.Origin,
			axis:      rec.Axis,
		})
		m.jointIndex[rec.Name] = id
	}

	for _, j := range m.joints {
		child := m.links[j.child]
		if child.parentJoint != NoJoint {
			return NewNotATreeError("link %q is the child of both %q and %q",
				child.name, m.joints[child.parentJoint].name, j.name)
		}
		child.parentJoint = j.id
	}
	for _, l := range m.links {
		for _, j := range m.joints {
			if j.parent == l.id || j.child == l.id {
				l.joints = append(l.joints, j.id)
			}
		}
	}
	return nil
}

// validateTree checks that every link can be reached from the base link. Together with the
// single-parent check in resolveJoints this rules out cycles.
func (m *Model) validateTree() error {
	reached := make([]bool, len(m.links))
	stack := []LinkID{m.base}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[id] {
			continue
		}
		reached[id] = true
		for _, jid := range m.links[id].joints {
			if j := m.joints[jid]; j.parent == id && j.child != id {
				stack = append(stack, j.child)
			}
		}
	}

	unreached := lo.FilterMap(m.links, func(l *Link, _ int) (string, bool) {
		return l.name, !reached[l.id]
	})
	if len(unreached) > 0 {
		return NewNotATreeError("links %v cannot be reached from base link %q", unreached, m.Base().name)
	}
	return nil
}

func (m *Model) collectWheels() error {
	wheels := lo.Filter(m.joints, func(j *Joint, _ int) bool { return j.IsContinuous() })
	if len(wheels) > maxWheels {
		return NewTooManyWheelsError(lo.Map(wheels, func(j *Joint, _ int) string { return j.name }))
	}
	m.wheels = lo.Map(wheels, func(j *Joint, _ int) JointID { return j.id })
	return nil
}

// loadMeshes gives every link its own mesh. On failure the meshes loaded so far are released.
func (m *Model) loadMeshes(loader spatialmath.MeshLoader) error {
	for _, l := range m.links {
		mesh, err := loader.LoadMesh(l.MeshKey(), l.color.RGBA32())
		if err != nil {
			return multierr.Combine(errors.Wrapf(err, "failed to load mesh for link %q", l.name), m.Close())
		}
		l.mesh = mesh
	}
	return nil
}
