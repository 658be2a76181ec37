package spatialmath

import (
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/robotsim/utils"
)

const quadOBJ = `# a unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
o quad
s off
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func TestParseOBJ(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(quadOBJ))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(obj.Positions), test.ShouldEqual, 4)
	test.That(t, len(obj.Normals), test.ShouldEqual, 1)
	test.That(t, len(obj.TexCoords), test.ShouldEqual, 1)
	test.That(t, len(obj.Faces), test.ShouldEqual, 1)
	test.That(t, obj.Faces[0][2], test.ShouldResemble, FaceVertex{Position: 2, TexCoord: 0, Normal: 0})
	test.That(t, obj.Positions[2], test.ShouldResemble, r3.Vector{X: 1, Y: 1})
}

func TestFanTriangulation(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(quadOBJ))
	test.That(t, err, test.ShouldBeNil)
	tris := obj.Triangles()
	test.That(t, len(tris), test.ShouldEqual, 2)
	positions := func(tri [3]FaceVertex) []int {
		return []int{tri[0].Position, tri[1].Position, tri[2].Position}
	}
	test.That(t, positions(tris[0]), test.ShouldResemble, []int{0, 1, 2})
	test.That(t, positions(tris[1]), test.ShouldResemble, []int{0, 2, 3})
}

func TestFaceIndexForms(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf -3//1 2//1 3\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, obj.Faces[0][0], test.ShouldResemble, FaceVertex{Position: 0, TexCoord: -1, Normal: 0})
	test.That(t, obj.Faces[0][2], test.ShouldResemble, FaceVertex{Position: 2, TexCoord: -1, Normal: -1})

	for _, tc := range []struct {
		obj string
		err string
	}{
		{"v 0 0 0\nf 1 2 3\n", "position index 2 out of range"},
		{"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/2 2 3\n", "texture coordinate index 2 out of range"},
		{"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//4 2 3\n", "normal index 4 out of range"},
		{"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ""},
		{"v 0 0 0\nv 1 0 0\nf 1 2\n", ""},
		{"v 0 0\n", ""},
		{"v a b c\n", ""},
	} {
		_, err := ParseOBJ(strings.NewReader(tc.obj))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, tc.err)
	}
}

func TestNewMesh(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(quadOBJ))
	test.That(t, err, test.ShouldBeNil)
	m := NewMesh("quad", obj, [4]float32{1, 0.5, 0, 1})
	test.That(t, m.Key(), test.ShouldEqual, "quad")
	test.That(t, m.VertexCount(), test.ShouldEqual, 6)
	test.That(t, len(m.Vertices()), test.ShouldEqual, 6*VertexStride)
	// second triangle starts again at the fan anchor
	test.That(t, m.Vertices()[3*VertexStride:3*VertexStride+VertexStride], test.ShouldResemble,
		[]float32{0, 0, 0, 1, 0.5, 0, 1})

	test.That(t, m.Close(), test.ShouldBeNil)
	test.That(t, m.Released(), test.ShouldBeTrue)
	test.That(t, m.Vertices(), test.ShouldBeNil)
	err = m.Close()
	test.That(t, errors.Is(err, ErrMeshReleased), test.ShouldBeTrue)
}

func TestDirMeshLoader(t *testing.T) {
	loader := DirMeshLoader{Dir: utils.ResolveFile("models")}
	for _, tc := range []struct {
		key      string
		vertices int
	}{
		{"box", 36},
		{"cylinder", 84},
		{"sphere", 24},
	} {
		m, err := loader.LoadMesh(tc.key, [4]float32{1, 1, 1, 1})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, m.VertexCount(), test.ShouldEqual, tc.vertices)
		test.That(t, m.Close(), test.ShouldBeNil)
	}

	_, err := loader.LoadMesh("capsule", [4]float32{})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = loader.LoadMesh("../spatialmath/box", [4]float32{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "escapes directory")
}
