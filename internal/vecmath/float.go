package vecmath

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Float is the numeric bound for every generic type in this module.
type Float interface {
	constraints.Float
}

func narrow[T Float](x T) bool {
	return unsafe.Sizeof(x) == 4
}

// Lit converts a real literal to T.
func Lit[T Float](v float64) T {
	return T(v)
}

// One is the multiplicative identity of T.
func One[T Float]() T {
	return 1
}

// Sin returns the sine of x in the precision of T.
func Sin[T Float](x T) T {
	if narrow(x) {
		return T(math32.Sin(float32(x)))
	}
	return T(math.Sin(float64(x)))
}

// Cos returns the cosine of x in the precision of T.
func Cos[T Float](x T) T {
	if narrow(x) {
		return T(math32.Cos(float32(x)))
	}
	return T(math.Cos(float64(x)))
}

// SinCos returns sin(x) and cos(x).
func SinCos[T Float](x T) (sin, cos T) {
	if narrow(x) {
		s, c := math32.Sincos(float32(x))
		return T(s), T(c)
	}
	s, c := math.Sincos(float64(x))
	return T(s), T(c)
}

// Sqrt returns the square root of x in the precision of T.
func Sqrt[T Float](x T) T {
	if narrow(x) {
		return T(math32.Sqrt(float32(x)))
	}
	return T(math.Sqrt(float64(x)))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite[T Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
