// Command cpom answers a single closest-point-on-mesh query from the
// command line: it loads a mesh (from an STL file, or a procedurally
// generated box/cylinder for quick experimentation) and reports the
// surface point closest to a given query point.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vdedun/cpom/internal/meshio"
	"github.com/vdedun/cpom/mesh"
	"github.com/vdedun/cpom/query"
	"github.com/vdedun/cpom/vector"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal(err.Error())
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	l, err := cfg.Build()
	if err != nil {
		// zap's development config has no failure mode that reaches here in
		// practice; fall back to a no-op logger rather than panicking on
		// startup.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func run(logger *zap.SugaredLogger) error {
	stlPath := flag.String("stl", "", "path to an STL file to query against")
	demo := flag.String("demo", "", "procedurally generate a mesh instead of loading a file: \"box\" or \"cylinder\"")
	x := flag.Float64("x", 0, "query point X")
	y := flag.Float64("y", 0, "query point Y")
	z := flag.Float64("z", 0, "query point Z")
	maxDist := flag.Float64("max-dist", 0, "maximum search radius; 0 means unbounded")
	flag.Parse()

	if (*stlPath == "") == (*demo == "") {
		return errors.New("exactly one of -stl or -demo must be set")
	}

	m, err := loadMesh(*stlPath, *demo)
	if err != nil {
		return errors.Wrap(err, "loading mesh")
	}

	logger.Infow("mesh loaded", "vertices", len(m.Vertices()), "faces", len(m.Faces()))

	engine, err := query.New(m)
	if err != nil {
		return errors.Wrap(err, "building query engine")
	}

	// r3.Vector is the conversion seam between the CLI's float64 flag
	// values and the core engine's float32 vector.Vector3.
	queryPoint := r3.Vector{X: *x, Y: *y, Z: *z}
	radius := float32(*maxDist)
	if radius == 0 {
		radius = float32(1e30)
	}

	point, err := engine.Closest(fromR3(queryPoint), radius)
	if err != nil {
		return errors.Wrap(err, "running query")
	}

	if point.HasNaN() {
		fmt.Println("no point within range")
		return nil
	}

	fmt.Println(point.String())
	return nil
}

func loadMesh(stlPath, demo string) (mesh.Mesh, error) {
	if stlPath != "" {
		return meshio.LoadSTL(stlPath)
	}

	switch demo {
	case "box":
		return meshio.GenerateBoxMesh(1, 1, 1)
	case "cylinder":
		return meshio.GenerateCylinderMesh(1, 0.5)
	default:
		return nil, errors.Errorf("unknown -demo value %q, want \"box\" or \"cylinder\"", demo)
	}
}

func fromR3(v r3.Vector) vector.Vector3 {
	return vector.New(float32(v.X), float32(v.Y), float32(v.Z))
}
