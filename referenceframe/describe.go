package referenceframe

import (
	"fmt"
	"io"
	"strings"
)

// Describe writes the tree as indented text, starting at the base link.
func (m *Model) Describe(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "robot %q: %d links, %d joints\n", m.name, len(m.links), len(m.joints))
	m.describeLink(&sb, m.base, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (m *Model) describeLink(sb *strings.Builder, id LinkID, depth int) {
	link := m.links[id]
	indent := strings.Repeat("  ", depth)
	role := "link"
	if link.isBase {
		role = "base link"
	}
	fmt.Fprintf(sb, "%s%s %s: %s, %s, %s %s\n",
		indent, role, link.name, link.shape, link.origin, link.material, link.color)

	for _, jid := range link.joints {
		joint := m.joints[jid]
		if joint.child == id {
			continue
		}
		fmt.Fprintf(sb, "%s  joint %s (%s", indent, joint.name, joint.jointType)
		if joint.IsContinuous() {
			fmt.Fprintf(sb, ", axis %g %g %g", joint.axis.X, joint.axis.Y, joint.axis.Z)
		}
		fmt.Fprintf(sb, "): %s\n", joint.origin)
		m.describeLink(sb, joint.child, depth+2)
	}
}
