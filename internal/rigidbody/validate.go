package rigidbody

import "github.com/san-kum/rigidsim/internal/vecmath"

// IsValid reports whether the angle and every axis component are finite.
func (a Attitude[T]) IsValid() bool {
	return vecmath.IsFinite(a.Angle) && a.Axis.IsValid()
}

// IsValid reports whether every field of the body is finite.
func (b Body[T]) IsValid() bool {
	return b.Pos.IsValid() && b.Vel.IsValid() && b.Acc.IsValid() &&
		b.Ori.IsValid() && b.Tor.IsValid() && b.Wre.IsValid()
}
