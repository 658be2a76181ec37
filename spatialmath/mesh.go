package spatialmath

import (
	"github.com/pkg/errors"

	"go.viam.com/robotsim/utils"
)

// VertexStride is the number of float32 values per vertex in a Mesh buffer: x y z r g b a.
const VertexStride = 7

// ErrMeshReleased is returned when a mesh is used or released after Close.
var ErrMeshReleased = errors.New("mesh already released")

// Mesh is a drawable triangle list with one color baked into every vertex. A Mesh is owned by
// exactly one link and released exactly once.
type Mesh struct {
	key         string
	vertices    []float32
	vertexCount int
	released    bool
}

// NewMesh flattens the fan-triangulated faces of obj into an interleaved buffer.
func NewMesh(key string, obj *OBJ, rgba [4]float32) *Mesh {
	tris := obj.Triangles()
	vertices := make([]float32, 0, len(tris)*3*VertexStride)
	for _, tri := range tris {
		for _, fv := range tri {
			p := obj.Positions[fv.Position]
			vertices = append(vertices,
				float32(p.X), float32(p.Y), float32(p.Z),
				rgba[0], rgba[1], rgba[2], rgba[3],
			)
		}
	}
	return &Mesh{
		key:         key,
		vertices:    vertices,
		vertexCount: len(vertices) / VertexStride,
	}
}

// NewMeshFromOBJFile loads and flattens the OBJ file at path.
func NewMeshFromOBJFile(path, key string, rgba [4]float32) (*Mesh, error) {
	obj, err := ReadOBJFile(path)
	if err != nil {
		return nil, err
	}
	return NewMesh(key, obj, rgba), nil
}

// Key is the asset name the mesh was loaded for.
func (m *Mesh) Key() string {
	return m.key
}

// Vertices returns the interleaved vertex buffer, or nil once released.
func (m *Mesh) Vertices() []float32 {
	return m.vertices
}

// VertexCount is the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	return m.vertexCount
}

// Released reports whether Close has been called.
func (m *Mesh) Released() bool {
	return m.released
}

// Close releases the vertex buffer. Calling it twice returns ErrMeshReleased.
func (m *Mesh) Close() error {
	if m.released {
		return errors.Wrapf(ErrMeshReleased, "mesh %q", m.key)
	}
	m.released = true
	m.vertices = nil
	m.vertexCount = 0
	return nil
}

// MeshLoader creates the mesh for an asset key with the given color.
type MeshLoader interface {
	LoadMesh(key string, rgba [4]float32) (*Mesh, error)
}

// DirMeshLoader loads "<Dir>/<key>.obj". Keys that would leave Dir are rejected.
type DirMeshLoader struct {
	Dir string
}

// LoadMesh implements MeshLoader.
func (l DirMeshLoader) LoadMesh(key string, rgba [4]float32) (*Mesh, error) {
	path, err := utils.SafeJoinDir(l.Dir, key+".obj")
	if err != nil {
		return nil, err
	}
	return NewMeshFromOBJFile(path, key, rgba)
}
