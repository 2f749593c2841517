// Package rigidbody provides a minimal rigid body kinematic integrator.
//
// A [Body] holds the linear state (position, velocity, acceleration) and the
// angular state of one body as three [Attitude] values at successive
// derivative orders:
//
//   - Ori: orientation, angle accumulated about an axis
//   - Tor: torque, the angular rate and its instantaneous axis
//   - Wre: wrench, the rate of the rate
//
// Acc and Wre are inputs supplied by the caller each tick. [Body.Update]
// advances the rest with a kick-drift-kick scheme, which is exact for a
// constant acceleration and reversible when dt is negated.
//
// # Example
//
//	b := rigidbody.Body[float64]{
//	    Vel: vecmath.Vec3(1.0, 0.0, 0.0),
//	    Acc: vecmath.Vec3(0.0, -9.8, 0.0),
//	    Ori: rigidbody.Attitude[float64]{Axis: vecmath.Vec3(0.0, 0.0, 1.0)},
//	}
//	b.Update(0.1)
//
// # Thread Safety
//
// Bodies share nothing. Distinct bodies may be updated from different
// goroutines without synchronization; a single body may not.
package rigidbody
