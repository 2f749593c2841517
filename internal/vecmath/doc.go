// Package vecmath provides the numeric capabilities the rigid body integrator
// is generic over: a floating point constraint, trigonometry that works for
// both float widths, and a fixed-size 3-vector.
//
//   - [Float]: any ~float32 or ~float64 type
//   - [Vector3]: add, scale, dot and cross products over [3]T
//   - [Sin], [Cos], [Sqrt]: dispatch to math32 for 4-byte floats, math otherwise
//
// float64 vectors convert to and from [r3.Vector] for interop with geometry code.
package vecmath
