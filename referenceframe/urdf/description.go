// Package urdf reads Universal Robot Description Format documents, directly or through xacro,
// into flat link and joint records. Names are not resolved here; referenceframe turns the records
// into a tree.
package urdf

import (
	"encoding/xml"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"

	"go.viam.com/robotsim/spatialmath"
	"go.viam.com/robotsim/utils"
)

// ShapeKind is the visual shape of a link.
type ShapeKind string

// The shapes a link may be drawn as.
const (
	ShapeBox      ShapeKind = "box"
	ShapeCylinder ShapeKind = "cylinder"
	ShapeSphere   ShapeKind = "sphere"
)

// JointType is the kinematic type of a joint.
type JointType string

// The supported joint types. Continuous joints are the ones that can be driven as wheels.
const (
	JointFixed      JointType = "fixed"
	JointContinuous JointType = "continuous"
)

// Geometry holds the dimensions of a link's visual shape, in meters. Box uses Length, Width and
// Height; Cylinder uses Radius and Length; Sphere uses Radius.
type Geometry struct {
	Kind   ShapeKind
	Length float64
	Width  float64
	Height float64
	Radius float64
}

// LinkRecord is one <link> as written in the document.
type LinkRecord struct {
	Name     string
	Geometry Geometry
	Origin   spatialmath.Offset
	Material string
	Color    Color
}

// JointRecord is one <joint> as written in the document. Parent and Child are link names.
type JointRecord struct {
	Name   string
	Type   JointType
	Parent string
	Child  string
	Origin spatialmath.Offset
	Axis   r3.Vector
}

// Description is a parsed robot document. Links and Joints keep document order.
type Description struct {
	Name      string
	Links     []LinkRecord
	Joints    []JointRecord
	Materials map[string]Color
}

// defaultAxis is the joint axis URDF assumes when <axis> is omitted.
var defaultAxis = r3.Vector{X: 1}

// Parse decodes a plain (already expanded) URDF document.
func Parse(data []byte) (*Description, error) {
	doc := &robotXML{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, NewMalformedDescriptionError("failed to decode URDF: %v", err)
	}

	materials, err := parseMaterials(doc.Materials)
	if err != nil {
		return nil, err
	}

	desc := &Description{
		Name:      doc.Name,
		Links:     make([]LinkRecord, 0, len(doc.Links)),
		Joints:    make([]JointRecord, 0, len(doc.Joints)),
		Materials: materials,
	}
	for i := range doc.Links {
		link, err := parseLink(&doc.Links[i], materials)
		if err != nil {
			return nil, err
		}
		desc.Links = append(desc.Links, link)
	}
	for i := range doc.Joints {
		joint, err := parseJoint(&doc.Joints[i])
		if err != nil {
			return nil, err
		}
		desc.Joints = append(desc.Joints, joint)
	}

	linkNames := lo.Map(desc.Links, func(l LinkRecord, _ int) string { return l.Name })
	if dups := lo.FindDuplicates(linkNames); len(dups) > 0 {
		return nil, NewMalformedDescriptionError("duplicate link names %v", dups)
	}
	jointNames := lo.Map(desc.Joints, func(j JointRecord, _ int) string { return j.Name })
	if dups := lo.FindDuplicates(jointNames); len(dups) > 0 {
		return nil, NewMalformedDescriptionError("duplicate joint names %v", dups)
	}
	return desc, nil
}

func parseMaterials(elems []materialXML) (map[string]Color, error) {
	materials := make(map[string]Color, len(elems))
	for i := range elems {
		m := &elems[i]
		if m.Name == "" {
			return nil, NewMalformedDescriptionError("material without a name")
		}
		rgba := m.rgba()
		if rgba == "" {
			return nil, newMissingAttributeError("material", m.Name, "rgba")
		}
		c, err := ParseRGBA(rgba)
		if err != nil {
			return nil, NewMalformedDescriptionError("material %q: %v", m.Name, err)
		}
		materials[m.Name] = c
	}
	return materials, nil
}

func parseLink(elem *linkXML, materials map[string]Color) (LinkRecord, error) {
	if elem.Name == "" {
		return LinkRecord{}, NewMalformedDescriptionError("link without a name")
	}
	link := LinkRecord{Name: elem.Name}
	if elem.Visual == nil {
		return link, NewMalformedDescriptionError("link %q has no visual element", elem.Name)
	}
	if elem.Visual.Geometry == nil || elem.Visual.Geometry.Kind == "" {
		return link, NewMalformedDescriptionError("link %q has no geometry", elem.Name)
	}

	var err error
	if link.Geometry, err = parseGeometry(elem.Name, elem.Visual.Geometry); err != nil {
		return link, err
	}
	if link.Origin, err = parseOrigin("link", elem.Name, elem.Visual.Origin); err != nil {
		return link, err
	}

	mat := elem.Visual.Material
	if mat == nil || mat.Name == "" {
		return link, newMissingAttributeError("link", elem.Name, "material")
	}
	link.Material = mat.Name
	if inline := mat.rgba(); inline != "" {
		if link.Color, err = ParseRGBA(inline); err != nil {
			return link, NewMalformedDescriptionError("link %q material: %v", elem.Name, err)
		}
		return link, nil
	}
	c, ok := materials[mat.Name]
	if !ok {
		return link, NewMalformedDescriptionError("link %q uses undefined material %q", elem.Name, mat.Name)
	}
	link.Color = c
	return link, nil
}

func parseGeometry(linkName string, g *geometryXML) (Geometry, error) {
	geom := Geometry{Kind: ShapeKind(g.Kind)}
	switch geom.Kind {
	case ShapeBox:
		if g.Size == "" {
			return geom, newMissingAttributeError("box of link", linkName, "size")
		}
		dims, err := utils.SpaceDelimitedStringToFloatSlice(g.Size, 3)
		if err != nil {
			return geom, NewMalformedDescriptionError("link %q box size: %v", linkName, err)
		}
		geom.Length, geom.Width, geom.Height = dims[0], dims[1], dims[2]
	case ShapeCylinder:
		var err error
		if geom.Radius, err = parseDimension(linkName, "cylinder", "radius", g.Radius); err != nil {
			return geom, err
		}
		if geom.Length, err = parseDimension(linkName, "cylinder", "length", g.Length); err != nil {
			return geom, err
		}
	case ShapeSphere:
		var err error
		if geom.Radius, err = parseDimension(linkName, "sphere", "radius", g.Radius); err != nil {
			return geom, err
		}
	default:
		return geom, NewMalformedDescriptionError("link %q has unsupported shape %q", linkName, g.Kind)
	}
	return geom, nil
}

func parseDimension(linkName, shape, attr, text string) (float64, error) {
	if text == "" {
		return 0, newMissingAttributeError(shape+" of link", linkName, attr)
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, NewMalformedDescriptionError("link %q %s %s: %v", linkName, shape, attr, err)
	}
	return value, nil
}

func parseOrigin(element, name string, o *originXML) (spatialmath.Offset, error) {
	if o == nil {
		return spatialmath.Offset{}, NewMalformedDescriptionError("%s %q has no origin", element, name)
	}
	if o.XYZ == "" {
		return spatialmath.Offset{}, newMissingAttributeError(element, name, "xyz")
	}
	if o.RPY == "" {
		return spatialmath.Offset{}, newMissingAttributeError(element, name, "rpy")
	}
	xyz, err := utils.SpaceDelimitedStringToFloatSlice(o.XYZ, 3)
	if err != nil {
		return spatialmath.Offset{}, NewMalformedDescriptionError("%s %q origin: %v", element, name, err)
	}
	rpy, err := utils.SpaceDelimitedStringToFloatSlice(o.RPY, 3)
	if err != nil {
		return spatialmath.Offset{}, NewMalformedDescriptionError("%s %q origin: %v", element, name, err)
	}
	return spatialmath.NewOffset(xyz, rpy), nil
}

func parseJoint(elem *jointXML) (JointRecord, error) {
	if elem.Name == "" {
		return JointRecord{}, NewMalformedDescriptionError("joint without a name")
	}
	joint := JointRecord{
		Name:   elem.Name,
		Type:   JointType(elem.Type),
		Parent: elem.Parent.Link,
		Child:  elem.Child.Link,
		Axis:   defaultAxis,
	}
	switch joint.Type {
	case JointFixed, JointContinuous:
	case "":
		return joint, newMissingAttributeError("joint", elem.Name, "type")
	default:
		return joint, NewMalformedDescriptionError("joint %q has unsupported type %q", elem.Name, elem.Type)
	}
	if joint.Parent == "" {
		return joint, NewMalformedDescriptionError("joint %q has no parent link", elem.Name)
	}
	if joint.Child == "" {
		return joint, NewMalformedDescriptionError("joint %q has no child link", elem.Name)
	}

	var err error
	if joint.Origin, err = parseOrigin("joint", elem.Name, elem.Origin); err != nil {
		return joint, err
	}
	if elem.Axis != nil && elem.Axis.XYZ != "" {
		axis, err := utils.SpaceDelimitedStringToFloatSlice(elem.Axis.XYZ, 3)
		if err != nil {
			return joint, NewMalformedDescriptionError("joint %q axis: %v", elem.Name, err)
		}
		joint.Axis = r3.Vector{X: axis[0], Y: axis[1], Z: axis[2]}
	}
	return joint, nil
}
