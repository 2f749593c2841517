// Package forces supplies the per-tick inputs of a rigid body.
//
// The integrator never computes accelerations or wrenches itself. A [Field]
// writes Acc and Wre on a body before each step:
//
//   - [Gravity]: constant linear acceleration
//   - [Spin]: constant wrench
//   - [Drag]: acceleration opposing velocity, added on top of what is set
//   - [Composite]: several fields applied in order
//
// Fields are stateless and safe to share between simulations.
package forces
