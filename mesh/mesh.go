// Package mesh defines the external collaborator contract cpom consumes:
// enumeration of vertex coordinates and enumeration of faces as vertex-index
// tuples. Mesh ingestion, file formats, and scene representations are
// explicitly out of scope for cpom itself — see internal/meshio for example
// collaborators.
package mesh

import "github.com/vdedun/cpom/vector"

// Face is an ordered sequence of integer vertex indices into a Mesh's
// Vertices. cpom accepts only length-3 (triangle) and length-4
// (quadrilateral) faces; indices are assumed valid into Vertices and are
// not range-checked by the consumer.
type Face []int

// Mesh is the polymorphic boundary a collaborator implements so cpom can
// build a query engine over it. It is consumed once, at construction, and
// never retained: implementations do not need to remain valid, or even
// exist, past that call.
type Mesh interface {
	// Vertices returns the mesh's vertex coordinates.
	Vertices() []vector.Vector3
	// Faces returns the mesh's faces as vertex-index tuples into
	// Vertices. Indices in Faces must be valid into Vertices.
	Faces() []Face
}

// Static is a Mesh backed by plain in-memory slices. It is the simplest
// possible collaborator and is what internal/meshio's loaders, and cpom's
// own tests, build before handing a mesh to query.New.
type Static struct {
	vertices []vector.Vector3
	faces    []Face
}

// NewStatic returns a Static mesh wrapping the given vertices and faces.
func NewStatic(vertices []vector.Vector3, faces []Face) *Static {
	return &Static{vertices: vertices, faces: faces}
}

// Vertices implements Mesh.
func (m *Static) Vertices() []vector.Vector3 {
	return m.vertices
}

// Faces implements Mesh.
func (m *Static) Faces() []Face {
	return m.faces
}
