package spatialmath

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// missingIndex is what the decoder stores for a face vertex without a texture coordinate or normal.
const missingIndex = math.MaxUint32

// FaceVertex indexes into the position, texture coordinate and normal lists of an OBJ. Indices
// are zero-based; -1 means the face did not reference that attribute.
type FaceVertex struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJ holds the records of a Wavefront OBJ file that matter for drawing.
type OBJ struct {
	Positions []r3.Vector
	Normals   []r3.Vector
	TexCoords [][2]float64
	Faces     [][]FaceVertex
}

// ReadOBJFile parses the OBJ file at path.
func ReadOBJFile(path string) (*OBJ, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mesh file")
	}
	defer f.Close() //nolint:errcheck

	parsed, err := ParseOBJ(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return parsed, nil
}

// ParseOBJ decodes the geometry of an OBJ. Materials are not drawn, so no material library is
// read and every object of the file is merged into one face list.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return nil, err
	}

	parsed := &OBJ{
		Positions: vectorsFrom(dec.Vertices),
		Normals:   vectorsFrom(dec.Normals),
	}
	for i := 0; i+1 < len(dec.Uvs); i += 2 {
		parsed.TexCoords = append(parsed.TexCoords, [2]float64{float64(dec.Uvs[i]), float64(dec.Uvs[i+1])})
	}

	for _, object := range dec.Objects {
		for fi, face := range object.Faces {
			vertices, err := parsed.faceVertices(face)
			if err != nil {
				return nil, errors.Wrapf(err, "object %q face %d", object.Name, fi+1)
			}
			parsed.Faces = append(parsed.Faces, vertices)
		}
	}
	return parsed, nil
}

func vectorsFrom(flat []float32) []r3.Vector {
	vectors := make([]r3.Vector, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		vectors = append(vectors, r3.Vector{X: float64(flat[i]), Y: float64(flat[i+1]), Z: float64(flat[i+2])})
	}
	return vectors
}

func (o *OBJ) faceVertices(face obj.Face) ([]FaceVertex, error) {
	vertices := make([]FaceVertex, 0, len(face.Vertices))
	for i, position := range face.Vertices {
		fv := FaceVertex{Position: position, TexCoord: -1, Normal: -1}
		if err := checkIndex("position", position, len(o.Positions)); err != nil {
			return nil, err
		}
		if i < len(face.Uvs) && face.Uvs[i] != missingIndex {
			fv.TexCoord = face.Uvs[i]
			if err := checkIndex("texture coordinate", fv.TexCoord, len(o.TexCoords)); err != nil {
				return nil, err
			}
		}
		if i < len(face.Normals) && face.Normals[i] != missingIndex {
			fv.Normal = face.Normals[i]
			if err := checkIndex("normal", fv.Normal, len(o.Normals)); err != nil {
				return nil, err
			}
		}
		vertices = append(vertices, fv)
	}
	return vertices, nil
}

func checkIndex(kind string, idx, count int) error {
	if idx < 0 || idx >= count {
		return errors.Errorf("%s index %d out of range (%d defined)", kind, idx+1, count)
	}
	return nil
}

// Triangles splits every face into a fan anchored at its first vertex: a face v0..vn becomes
// (v0, v1, v2), (v0, v2, v3), ... (v0, vn-1, vn).
func (o *OBJ) Triangles() [][3]FaceVertex {
	var tris [][3]FaceVertex
	for _, face := range o.Faces {
		for i := 1; i+1 < len(face); i++ {
			tris = append(tris, [3]FaceVertex{face[0], face[i], face[i+1]})
		}
	}
	return tris
}
