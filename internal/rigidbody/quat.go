package rigidbody

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Quat returns the unit quaternion for a rotation of a.Angle about a.Axis.
// The axis is normalized on a copy; a zero axis gives the identity.
func (a Attitude[T]) Quat() quat.Number {
	axis := a.Axis.R3()
	n := axis.Norm()
	if n == 0 {
		return quat.Number{Real: 1}
	}
	axis = axis.Mul(1 / n)
	half := float64(a.Angle) / 2
	s := math.Sin(half)
	return quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// Rotate applies the rotation described by a to v.
func (a Attitude[T]) Rotate(v r3.Vector) r3.Vector {
	q := a.Quat()
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
