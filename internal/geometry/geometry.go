// Package geometry provides the planar math used to read hand poses.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DegenerateAngle is returned by Angle when either ray has zero length.
const DegenerateAngle = 180.0

// Point is a 2D point in normalized image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a.vec(), b.vec()))
}

// Angle returns the angle in degrees at vertex b between the rays b->a and
// b->c, in the range [0, 180]. A zero-length ray yields DegenerateAngle.
func Angle(a, b, c Point) float64 {
	ba := r2.Sub(a.vec(), b.vec())
	bc := r2.Sub(c.vec(), b.vec())

	mag := r2.Norm(ba) * r2.Norm(bc)
	if mag == 0 {
		return DegenerateAngle
	}

	cos := r2.Dot(ba, bc) / mag
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}
