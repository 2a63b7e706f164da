// Package vector implements the 3D single-precision vector primitive used
// throughout cpom's geometry kernels.
package vector

import (
	"math"
	"strconv"
)

// Vector3 is an ordered triple of 32-bit floats with component-wise
// arithmetic.
type Vector3 struct {
	X, Y, Z float32
}

// New returns a Vector3 with the given components.
func New(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Splat returns a Vector3 with all three components set to n.
func Splat(n float32) Vector3 {
	return Vector3{X: n, Y: n, Z: n}
}

// Add returns the component-wise sum of v and other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns the component-wise difference v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul returns the component-wise product of v and other.
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Div returns the component-wise quotient v / other.
func (v Vector3) Div(other Vector3) Vector3 {
	return Vector3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// ScaleDiv returns v with every component divided by s.
func (v Vector3) ScaleDiv(s float32) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// Abs returns v with the absolute value of each component.
func (v Vector3) Abs() Vector3 {
	return Vector3{abs32(v.X), abs32(v.Y), abs32(v.Z)}
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// SqrLength returns the squared length of v.
func (v Vector3) SqrLength() float32 {
	return v.Dot(v)
}

// Length returns the length of v.
func (v Vector3) Length() float32 {
	return float32(math.Sqrt(float64(v.SqrLength())))
}

// Equal reports whether v and other are exactly equal, component-wise.
func (v Vector3) Equal(other Vector3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// AlmostEqual reports whether v and other are within epsilon of each other,
// measured by the length of their difference.
func (v Vector3) AlmostEqual(other Vector3, epsilon float32) bool {
	return v.Sub(other).Length() < epsilon
}

// HasNaN reports whether any component of v is NaN.
func (v Vector3) HasNaN() bool {
	return isNaN32(v.X) || isNaN32(v.Y) || isNaN32(v.Z)
}

// String implements fmt.Stringer.
func (v Vector3) String() string {
	return fmtFloat(v.X) + "," + fmtFloat(v.Y) + "," + fmtFloat(v.Z)
}

func fmtFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// NaN returns the vector with every component set to NaN, the documented
// "unreachable" marker for a query result outside the search radius.
func NaN() Vector3 {
	n := float32(math.NaN())
	return Vector3{n, n, n}
}

// Min returns the component-wise minimum of a and b.
func Min(a, b Vector3) Vector3 {
	return Vector3{min32(a.X, b.X), min32(a.Y, b.Y), min32(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vector3) Vector3 {
	return Vector3{max32(a.X, b.X), max32(a.Y, b.Y), max32(a.Z, b.Z)}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func isNaN32(f float32) bool {
	return f != f
}
