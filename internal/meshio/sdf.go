package meshio

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/vdedun/cpom/mesh"
	"github.com/vdedun/cpom/vector"
)

// meshCells controls marching cubes tessellation resolution: the SDF's
// bounding box is sampled on a grid with roughly this many cells along its
// longest axis. Higher values produce denser, more accurate meshes at a
// roughly cubic cost in triangle count.
const meshCells = 80

// GenerateBoxMesh tessellates an axis-aligned box of the given dimensions,
// centered at the origin, into a mesh.Mesh via marching cubes over its
// signed distance field. It exists to give cmd/cpom a mesh it can query
// without needing an external STL file.
func GenerateBoxMesh(x, y, z float64) (mesh.Mesh, error) {
	solid, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, errors.Wrap(err, "building box SDF")
	}
	return tessellate(solid)
}

// GenerateCylinderMesh tessellates a cylinder of the given height and
// radius, centered at the origin with its axis along Z, into a mesh.Mesh
// via marching cubes over its signed distance field.
func GenerateCylinderMesh(height, radius float64) (mesh.Mesh, error) {
	solid, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, errors.Wrap(err, "building cylinder SDF")
	}
	return tessellate(solid)
}

// tessellate renders an sdf.SDF3 with a uniform marching-cubes grid and
// flattens the resulting triangles into a mesh.Mesh. As with LoadSTL, no
// vertex welding is performed: each triangle mints three fresh vertices.
func tessellate(solid sdf.SDF3) (mesh.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(meshCells)
	triangles := render.ToTriangles(solid, renderer)

	vertices := make([]vector.Vector3, 0, len(triangles)*3)
	faces := make([]mesh.Face, 0, len(triangles))

	for _, tri := range triangles {
		base := len(vertices)
		vertices = append(vertices,
			toVector3FromV3(tri[0]),
			toVector3FromV3(tri[1]),
			toVector3FromV3(tri[2]),
		)
		faces = append(faces, mesh.Face{base, base + 1, base + 2})
	}

	return mesh.NewStatic(vertices, faces), nil
}

func toVector3FromV3(v v3.Vec) vector.Vector3 {
	return vector.New(float32(v.X), float32(v.Y), float32(v.Z))
}
