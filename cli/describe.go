package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"go.viam.com/robotsim/referenceframe"
)

// DescribeAction prints the links and joints of a robot followed by its tree.
func DescribeAction(c *cli.Context) error {
	r, err := loadRobot(c)
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer r.Close()

	model := r.Model()
	printf(c.App.Writer, "Robot %s, base link %s", model.Name(), model.Base().Name())
	printf(c.App.Writer, "%s", linksTable(model))
	printf(c.App.Writer, "%s", jointsTable(model))
	if r.Drivable() {
		printf(c.App.Writer, "Wheels: %v", r.WheelNames())
	} else if len(model.Wheels()) > 0 {
		warningf(c.App.Writer, "robot has %d wheel(s) but needs exactly 2 to drive", len(model.Wheels()))
	}
	return model.Describe(c.App.Writer)
}

func linksTable(model *referenceframe.Model) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Link", "Shape", "Origin", "Material", "Color", "Parent Joint"})
	for _, link := range model.Links() {
		parent := "-"
		if id := link.ParentJoint(); id != referenceframe.NoJoint {
			parent = model.Joint(id).Name()
		}
		t.AppendRow([]interface{}{
			link.Name(),
			link.Shape().String(),
			link.Origin().String(),
			link.Material(),
			link.Color().String(),
			parent,
		})
	}
	return t.Render()
}

func jointsTable(model *referenceframe.Model) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Joint", "Type", "Parent", "Child", "Origin", "Axis"})
	for _, joint := range model.Joints() {
		axis := "-"
		if joint.IsContinuous() {
			a := joint.Axis()
			axis = fmt.Sprintf("%g %g %g", a.X, a.Y, a.Z)
		}
		t.AppendRow([]interface{}{
			joint.Name(),
			string(joint.Type()),
			model.Link(joint.Parent()).Name(),
			model.Link(joint.Child()).Name(),
			joint.Origin().String(),
			axis,
		})
	}
	return t.Render()
}
