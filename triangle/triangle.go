// Package triangle implements the exact closed-form point-to-triangle
// distance kernel (D. Eberly, "Distance Between Point and Triangle in 3D"),
// extended to quadrilaterals by triangulation, and the face dispatch that
// routes a 3- or 4-vertex face to the kernel.
package triangle

import (
	"github.com/pkg/errors"

	"github.com/vdedun/cpom/vector"
)

// ErrDegenerateTriangle is returned when the three triangle vertices are
// exactly collinear: the Gram determinant a*c - b*b is exactly zero in
// IEEE-754 float arithmetic. This comparison is deliberately strict; see
// the package-level note in DESIGN.md before loosening it to a tolerance.
var ErrDegenerateTriangle = errors.New("cpom/triangle: degenerate (collinear) triangle")

// ErrUnsupportedFace is returned when a face has fewer than 3 or more than
// 4 vertices.
var ErrUnsupportedFace = errors.New("cpom/triangle: face has unsupported number of vertices")

// ClosestPointOnTriangle returns the point on the closed triangle
// (v0, v1, v2) closest to p, and the squared distance from p to that point.
//
// The triangle is parameterized as v0 + s*(v1-v0) + t*(v2-v0) with
// s >= 0, t >= 0, s+t <= 1, and the unconstrained minimizer is classified
// into one of the seven regions of the (s, t) parameter plane before being
// clamped to the nearest feasible point.
func ClosestPointOnTriangle(v0, v1, v2, p vector.Vector3) (vector.Vector3, float32, error) {
	e0 := v1.Sub(v0)
	e1 := v2.Sub(v0)
	v0ToP := v0.Sub(p)

	a := e0.Dot(e0)
	b := e0.Dot(e1)
	c := e1.Dot(e1)
	d := e0.Dot(v0ToP)
	e := e1.Dot(v0ToP)

	det := a*c - b*b
	if det == 0.0 {
		return vector.Vector3{}, 0, ErrDegenerateTriangle
	}

	s1 := b*e - c*d
	t1 := b*d - a*e

	s2, t2 := classify(s1, t1, det, a, b, c, d, e)

	closest := v0.Add(e0.Scale(s2)).Add(e1.Scale(t2))
	sqrDist := p.Sub(closest).SqrLength()
	return closest, sqrDist, nil
}

// classify clamps the unconstrained minimizer (s1/det, t1/det) to the
// nearest feasible point of the triangle's parameter domain, following the
// region decision tree of the Eberly reference exactly.
func classify(s1, t1, det, a, b, c, d, e float32) (s2, t2 float32) {
	s2, t2 = s1, t1

	if s1+t1 <= det {
		switch {
		case s1 < 0.0:
			if t1 < 0.0 {
				// Region 4
				if d < 0.0 {
					t2 = 0.0
					if -d >= a {
						s2 = 1.0
					} else {
						s2 = -d / a
					}
				} else {
					s2 = 0.0
					switch {
					case e >= 0.0:
						t2 = 0.0
					case -e >= c:
						t2 = 1.0
					default:
						t2 = -e / c
					}
				}
			} else {
				// Region 3
				s2 = 0.0
				switch {
				case e >= 0.0:
					t2 = 0.0
				case -e >= c:
					t2 = 1.0
				default:
					t2 = -e / c
				}
			}
		case t1 < 0.0:
			// Region 5
			t2 = 0.0
			switch {
			case d >= 0.0:
				s2 = 0.0
			case -d >= a:
				s2 = 1.0
			default:
				s2 = -d / a
			}
		default:
			// Region 0 — interior.
			invDet := 1.0 / det
			s2 = s1 * invDet
			t2 = t1 * invDet
		}
		return s2, t2
	}

	switch {
	case s1 < 0.0:
		// Region 2
		tmp0 := b + d
		tmp1 := c + e
		if tmp1 > tmp0 {
			num := tmp1 - tmp0
			denom := a - 2.0*b + c
			if num >= denom {
				s2 = 1.0
			} else {
				s2 = num / denom
			}
			t2 = 1.0 - s2
		} else {
			s2 = 0.0
			switch {
			case tmp1 <= 0.0:
				t2 = 1.0
			case e >= 0.0:
				t2 = 0.0
			default:
				t2 = -e / c
			}
		}
	case t1 < 0.0:
		// Region 6
		tmp0 := b + e
		tmp1 := a + d
		if tmp1 > tmp0 {
			num := tmp1 - tmp0
			denom := a - 2.0*b + c
			if num >= denom {
				t2 = 1.0
			} else {
				t2 = num / denom
			}
			s2 = 1.0 - t2
		} else {
			t2 = 0.0
			switch {
			case tmp1 <= 0.0:
				s2 = 1.0
			case d >= 0.0:
				s2 = 0.0
			default:
				s2 = -d / a
			}
		}
	default:
		// Region 1
		num := c + e - b - d
		if num <= 0.0 {
			s2 = 0.0
		} else {
			denom := a - 2.0*b + c
			if num >= denom {
				s2 = 1.0
			} else {
				s2 = num / denom
			}
		}
		t2 = 1.0 - s2
	}
	return s2, t2
}

// ClosestPointOnFace dispatches a face of 3 or 4 vertex indices to the
// kernel: a triangle uses a single kernel call, a quadrilateral calls the
// kernel on both triangles (v0,v1,v2) and (v2,v3,v0) and keeps the closer
// result. Any other vertex count fails with ErrUnsupportedFace.
func ClosestPointOnFace(faceVertexIDs []int, vertices []vector.Vector3, p vector.Vector3) (vector.Vector3, float32, error) {
	switch len(faceVertexIDs) {
	case 3:
		v0 := vertices[faceVertexIDs[0]]
		v1 := vertices[faceVertexIDs[1]]
		v2 := vertices[faceVertexIDs[2]]
		return ClosestPointOnTriangle(v0, v1, v2, p)
	case 4:
		v0 := vertices[faceVertexIDs[0]]
		v1 := vertices[faceVertexIDs[1]]
		v2 := vertices[faceVertexIDs[2]]
		v3 := vertices[faceVertexIDs[3]]

		point1, sqrDist1, err := ClosestPointOnTriangle(v0, v1, v2, p)
		if err != nil {
			return vector.Vector3{}, 0, err
		}
		point2, sqrDist2, err := ClosestPointOnTriangle(v2, v3, v0, p)
		if err != nil {
			return vector.Vector3{}, 0, err
		}
		if sqrDist2 < sqrDist1 {
			return point2, sqrDist2, nil
		}
		return point1, sqrDist1, nil
	default:
		return vector.Vector3{}, 0, errors.Wrapf(ErrUnsupportedFace, "face has %d vertices", len(faceVertexIDs))
	}
}
