// Package bounds implements the axis-aligned bounding volumes and extent
// reduction used to build and query the octree index: a bounding cube for
// octree node regions, a bounding box for face bounds, and the extent
// accumulator used to derive both from a set of points.
package bounds

import (
	"math"

	"github.com/vdedun/cpom/vector"
)

// AABCube is an axis-aligned bounding cube: a center and a single scalar
// half-width. Used for octree node regions.
type AABCube struct {
	Center    vector.Vector3
	HalfWidth float32
}

// AABBox is an axis-aligned bounding box: a center and a per-axis
// half-width. Used for face bounds inside octree elements.
type AABBox struct {
	Center    vector.Vector3
	HalfWidth vector.Vector3
}

// Extent is a (min-corner, max-corner) pair used as a monoidal accumulator
// during bounds computation.
type Extent struct {
	Min, Max vector.Vector3
}

// EmptyExtent returns the identity element for Grow: (+Inf, -Inf).
func EmptyExtent() Extent {
	inf := float32(math.Inf(1))
	return Extent{Min: vector.Splat(inf), Max: vector.Splat(-inf)}
}

// Grow combines an extent with a point by component-wise min/max and
// returns the result.
func (e Extent) Grow(p vector.Vector3) Extent {
	return Extent{Min: vector.Min(e.Min, p), Max: vector.Max(e.Max, p)}
}

// ExtentOfPoints reduces a sequence of points to their Extent.
func ExtentOfPoints(points []vector.Vector3) Extent {
	extent := EmptyExtent()
	for _, p := range points {
		extent = extent.Grow(p)
	}
	return extent
}

// ComputeCubicBounds returns the smallest bounding cube of an extent: center
// at the extent's midpoint, half-width half the largest dimension. The cube
// contains the extent, and its faces touch the extent along the largest
// dimension.
func ComputeCubicBounds(extent Extent) AABCube {
	dims := extent.Max.Sub(extent.Min)
	maxDim := dims.X
	if dims.Y > maxDim {
		maxDim = dims.Y
	}
	if dims.Z > maxDim {
		maxDim = dims.Z
	}
	return AABCube{
		Center:    extent.Min.Add(extent.Max).Scale(0.5),
		HalfWidth: 0.5 * maxDim,
	}
}

// ComputeBounds returns the smallest bounding box of an extent: center at
// the midpoint, per-axis half-width half the per-axis dimension.
func ComputeBounds(extent Extent) AABBox {
	dims := extent.Max.Sub(extent.Min)
	return AABBox{
		Center:    extent.Min.Add(extent.Max).Scale(0.5),
		HalfWidth: dims.Scale(0.5),
	}
}

// Intersect reports whether a cube and a box overlap: true iff the
// per-axis center distance does not exceed the sum of half-widths along
// every axis.
func Intersect(cube AABCube, box AABBox) bool {
	distances := cube.Center.Sub(box.Center).Abs()
	halfWidthSum := vector.Splat(cube.HalfWidth).Add(box.HalfWidth)
	return distances.X <= halfWidthSum.X &&
		distances.Y <= halfWidthSum.Y &&
		distances.Z <= halfWidthSum.Z
}

// SqrDistanceToCube returns the squared distance from p to the closest
// point on cube. Zero when p lies inside the cube.
func SqrDistanceToCube(p vector.Vector3, cube AABCube) float32 {
	d := p.Sub(cube.Center).Abs().Sub(vector.Splat(cube.HalfWidth))
	d = vector.Max(d, vector.Splat(0))
	return d.SqrLength()
}
