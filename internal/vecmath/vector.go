package vecmath

import "github.com/golang/geo/r3"

// Vector3 is a 3-vector stored by value.
type Vector3[T Float] [3]T

// Vec3 builds a vector from its components.
func Vec3[T Float](x, y, z T) Vector3[T] {
	return Vector3[T]{x, y, z}
}

func (v Vector3[T]) Add(o Vector3[T]) Vector3[T] {
	return Vector3[T]{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vector3[T]) Sub(o Vector3[T]) Vector3[T] {
	return Vector3[T]{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vector3[T]) Scale(s T) Vector3[T] {
	return Vector3[T]{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vector3[T]) Dot(o Vector3[T]) T {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vector3[T]) Cross(o Vector3[T]) Vector3[T] {
	return Vector3[T]{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Norm is the Euclidean length of v.
func (v Vector3[T]) Norm() T {
	return Sqrt(v.Dot(v))
}

// IsValid reports whether every component is finite.
func (v Vector3[T]) IsValid() bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// Near reports whether every component of v is within tol of o.
func (v Vector3[T]) Near(o Vector3[T], tol T) bool {
	for i := range v {
		d := v[i] - o[i]
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

// R3 converts a float64 vector to the geo representation.
func (v Vector3[T]) R3() r3.Vector {
	return r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// FromR3 converts a geo vector to a Vector3 of any float width.
func FromR3[T Float](v r3.Vector) Vector3[T] {
	return Vector3[T]{T(v.X), T(v.Y), T(v.Z)}
}
