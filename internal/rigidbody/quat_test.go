package rigidbody_test

import (
	"math"

	"github.com/golang/geo/r3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/num/quat"
)

var _ = Describe("Attitude quaternion view", func() {
	It("gives the identity for a zero axis", func() {
		Expect(att{Angle: 2, Axis: v3(0, 0, 0)}.Quat()).To(Equal(quat.Number{Real: 1}))
	})

	It("produces a unit quaternion for a non-unit axis", func() {
		q := att{Angle: 1.2, Axis: v3(0, 0, 5)}.Quat()

		Expect(quat.Abs(q)).To(BeNumerically("~", 1, 1e-12))
		Expect(q.Real).To(BeNumerically("~", math.Cos(0.6), 1e-12))
		Expect(q.Kmag).To(BeNumerically("~", math.Sin(0.6), 1e-12))
	})

	It("rotates x onto y for a quarter turn about z", func() {
		got := att{Angle: math.Pi / 2, Axis: v3(0, 0, 1)}.Rotate(r3.Vector{X: 1})

		Expect(got.X).To(BeNumerically("~", 0, 1e-12))
		Expect(got.Y).To(BeNumerically("~", 1, 1e-12))
		Expect(got.Z).To(BeNumerically("~", 0, 1e-12))
	})

	It("does not modify the attitude", func() {
		a := att{Angle: 1, Axis: v3(0, 3, 4)}
		_ = a.Quat()
		Expect(a.Axis).To(Equal(v3(0, 3, 4)))
	})
})

var _ = Describe("Body validity", func() {
	It("flags NaN and Inf anywhere in the state", func() {
		var b = bodyAt(v3(0, 0, 0))
		Expect(b.IsValid()).To(BeTrue())

		b.Vel[2] = math.NaN()
		Expect(b.IsValid()).To(BeFalse())

		b = bodyAt(v3(0, 0, 0))
		b.Tor.Angle = math.Inf(1)
		Expect(b.IsValid()).To(BeFalse())
	})
})
