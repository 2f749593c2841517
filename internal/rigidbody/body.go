package rigidbody

import "github.com/san-kum/rigidsim/internal/vecmath"

// Attitude is an angular quantity: a magnitude paired with an axis.
// The axis is not required to be unit length.
type Attitude[T vecmath.Float] struct {
	Angle T
	Axis  vecmath.Vector3[T]
}

// Body is the kinematic state of one rigid body at one instant.
type Body[T vecmath.Float] struct {
	Pos vecmath.Vector3[T]
	Vel vecmath.Vector3[T]
	Acc vecmath.Vector3[T]

	Ori Attitude[T]
	Tor Attitude[T]
	Wre Attitude[T]
}

// Clone returns a copy of b.
func (b Body[T]) Clone() Body[T] {
	return b
}

// UpdateLinear moves position and velocity through dt.
func (b *Body[T]) UpdateLinear(dt T) {
	halfDt := vecmath.Lit[T](0.5) * dt
	b.Vel = b.Vel.Add(b.Acc.Scale(halfDt))
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Vel = b.Vel.Add(b.Acc.Scale(halfDt))
}

// UpdateAngular moves orientation and torque through dt.
func (b *Body[T]) UpdateAngular(dt T) {
	halfDt := vecmath.Lit[T](0.5) * dt
	b.Tor = Angular(b.Tor, b.Wre, halfDt)
	b.Ori = Angular(b.Ori, b.Tor, dt)
	b.Tor = Angular(b.Tor, b.Wre, halfDt)
}

// Update moves the linear and then the angular state through dt.
func (b *Body[T]) Update(dt T) {
	b.UpdateLinear(dt)
	b.UpdateAngular(dt)
}

// Angular solves the attitude analogue of s' = s + v*t, where a is one
// derivative order below b. The axis of a is turned about the axis of b by
// b.Angle*t with Rodrigues' rotation formula; b.Axis is used as given.
func Angular[T vecmath.Float](a, b Attitude[T], t T) Attitude[T] {
	angle := a.Angle + a.Axis.Dot(b.Axis)*b.Angle*t
	sin, cos := vecmath.SinCos(b.Angle * t)
	axis := a.Axis.Scale(cos).
		Add(b.Axis.Cross(a.Axis).Scale(sin)).
		Add(b.Axis.Scale(b.Axis.Dot(a.Axis) * (vecmath.One[T]() - cos)))
	return Attitude[T]{Angle: angle, Axis: axis}
}
