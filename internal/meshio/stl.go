// Package meshio provides example mesh.Mesh collaborators for cpom's CLI:
// an STL file loader and a procedural SDF-tessellated generator. Mesh
// ingestion is explicitly outside cpom's core scope; this package exists
// only to give cmd/cpom something real to query against.
package meshio

import (
	"github.com/pkg/errors"
	"github.com/philipparndt/gostl/pkg/geometry"
	gostl "github.com/philipparndt/gostl/pkg/stl"

	"github.com/vdedun/cpom/mesh"
	"github.com/vdedun/cpom/vector"
)

// LoadSTL parses filename with gostl's ASCII/binary STL reader and builds a
// mesh.Mesh from it. gostl exposes a Model as a flat list of triangles
// (three loose vertices each, no shared-vertex indexing), so the result
// mints three fresh vertices per triangle rather than welding duplicates —
// harmless for cpom, since queries only ever read vertex coordinates
// through face indices.
func LoadSTL(filename string) (mesh.Mesh, error) {
	model, err := gostl.Parse(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing STL file %q", filename)
	}

	vertices := make([]vector.Vector3, 0, len(model.Triangles)*3)
	faces := make([]mesh.Face, 0, len(model.Triangles))

	for _, tri := range model.Triangles {
		base := len(vertices)
		vertices = append(vertices,
			toVector3(tri.V1),
			toVector3(tri.V2),
			toVector3(tri.V3),
		)
		faces = append(faces, mesh.Face{base, base + 1, base + 2})
	}

	return mesh.NewStatic(vertices, faces), nil
}

func toVector3(v geometry.Vector3) vector.Vector3 {
	return vector.New(float32(v.X), float32(v.Y), float32(v.Z))
}
