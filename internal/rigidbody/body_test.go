package rigidbody_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/types"

	"github.com/san-kum/rigidsim/internal/rigidbody"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

type vec = vecmath.Vector3[float64]
type att = rigidbody.Attitude[float64]

func v3(x, y, z float64) vec { return vecmath.Vec3(x, y, z) }

func beNear(want vec, tol float64) types.GomegaMatcher {
	return WithTransform(func(got vec) []float64 { return got[:] }, HaveExactElements(
		BeNumerically("~", want[0], tol),
		BeNumerically("~", want[1], tol),
		BeNumerically("~", want[2], tol),
	))
}

var _ = Describe("Body", func() {
	Describe("UpdateLinear", func() {
		DescribeTable("is exact for constant acceleration",
			func(pos, vel, acc vec, dt float64) {
				b := rigidbody.Body[float64]{Pos: pos, Vel: vel, Acc: acc}
				b.UpdateLinear(dt)

				Expect(b.Vel).To(beNear(vel.Add(acc.Scale(dt)), 1e-12))
				Expect(b.Pos).To(beNear(pos.Add(vel.Scale(dt)).Add(acc.Scale(dt*dt/2)), 1e-12))
				Expect(b.Acc).To(Equal(acc))
			},
			Entry("free fall", v3(0, 0, 0), v3(1, 0, 0), v3(0, -9.8, 0), 0.1),
			Entry("zero dt", v3(1, 2, 3), v3(-1, 0.5, 2), v3(3, 3, 3), 0.0),
			Entry("negative dt", v3(4, -2, 1), v3(0.2, 0.3, -0.4), v3(1, -1, 0.5), -0.25),
			Entry("large step", v3(-5, 0, 5), v3(10, 20, -30), v3(-2, 0.1, 9), 3.0),
		)

		DescribeTable("is undone by stepping back with -dt",
			func(pos, vel, acc vec, dt float64) {
				b := rigidbody.Body[float64]{Pos: pos, Vel: vel, Acc: acc}
				b.UpdateLinear(dt)
				b.UpdateLinear(-dt)

				Expect(b.Pos).To(beNear(pos, 1e-12))
				Expect(b.Vel).To(beNear(vel, 1e-12))
			},
			Entry("free fall", v3(0, 0, 0), v3(1, 0, 0), v3(0, -9.8, 0), 0.1),
			Entry("mixed signs", v3(4, -2, 1), v3(0.2, 0.3, -0.4), v3(1, -1, 0.5), 0.7),
			Entry("small step", v3(1, 1, 1), v3(1, 1, 1), v3(1, 1, 1), 1e-4),
		)
	})

	Describe("UpdateAngular", func() {
		It("turns the orientation axis at the torque rate", func() {
			omega := math.Pi / 2
			b := rigidbody.Body[float64]{
				Ori: att{Angle: 0.3, Axis: v3(1, 0, 0)},
				Tor: att{Angle: omega, Axis: v3(0, 0, 1)},
			}
			b.UpdateAngular(1)

			Expect(b.Ori.Axis).To(beNear(v3(0, 1, 0), 1e-12))
			Expect(b.Ori.Angle).To(BeNumerically("~", 0.3, 1e-12))
			Expect(b.Tor).To(Equal(att{Angle: omega, Axis: v3(0, 0, 1)}))
		})

		It("accumulates angle when torque is aligned with the orientation axis", func() {
			b := rigidbody.Body[float64]{
				Ori: att{Angle: 0, Axis: v3(0, 0, 1)},
				Tor: att{Angle: 2, Axis: v3(0, 0, 1)},
			}
			for i := 0; i < 10; i++ {
				b.UpdateAngular(0.1)
			}

			Expect(b.Ori.Angle).To(BeNumerically("~", 2, 1e-12))
			Expect(b.Ori.Axis).To(beNear(v3(0, 0, 1), 1e-12))
		})

		It("spins torque up under an aligned wrench", func() {
			b := rigidbody.Body[float64]{
				Ori: att{Axis: v3(0, 0, 1)},
				Tor: att{Axis: v3(0, 0, 1)},
				Wre: att{Angle: 1, Axis: v3(0, 0, 1)},
			}
			b.UpdateAngular(0.5)

			Expect(b.Tor.Angle).To(BeNumerically("~", 0.5, 1e-12))
			Expect(b.Ori.Angle).To(BeNumerically("~", 0.125, 1e-12))
			Expect(b.Wre).To(Equal(att{Angle: 1, Axis: v3(0, 0, 1)}))
		})

		It("leaves the linear state alone", func() {
			b := rigidbody.Body[float64]{
				Pos: v3(1, 2, 3),
				Vel: v3(4, 5, 6),
				Acc: v3(7, 8, 9),
				Tor: att{Angle: 1, Axis: v3(0, 1, 0)},
			}
			b.UpdateAngular(0.2)

			Expect(b.Pos).To(Equal(v3(1, 2, 3)))
			Expect(b.Vel).To(Equal(v3(4, 5, 6)))
			Expect(b.Acc).To(Equal(v3(7, 8, 9)))
		})
	})

	Describe("Update", func() {
		It("advances a thrown body one tick", func() {
			b := rigidbody.Body[float64]{
				Pos: v3(0, 0, 0),
				Vel: v3(1, 0, 0),
				Acc: v3(0, -9.8, 0),
				Ori: att{Angle: 0, Axis: v3(0, 0, 1)},
			}
			b.Update(0.1)

			Expect(b.Vel).To(beNear(v3(1, -0.98, 0), 1e-12))
			Expect(b.Pos).To(beNear(v3(0.1, -0.049, 0), 1e-12))
			Expect(b.Ori).To(Equal(att{Angle: 0, Axis: v3(0, 0, 1)}))
			Expect(b.Tor).To(Equal(att{}))
			Expect(b.Wre).To(Equal(att{}))
		})

		It("is the linear step followed by the angular step", func() {
			start := rigidbody.Body[float64]{
				Pos: v3(1, 0, -1),
				Vel: v3(0.5, 0.5, 0),
				Acc: v3(0, 0, -1),
				Ori: att{Angle: 0.1, Axis: v3(1, 0, 0)},
				Tor: att{Angle: 0.4, Axis: v3(0, 0.6, 0.8)},
				Wre: att{Angle: 0.2, Axis: v3(0, 1, 0)},
			}

			combined := start.Clone()
			combined.Update(0.05)

			split := start.Clone()
			split.UpdateLinear(0.05)
			split.UpdateAngular(0.05)

			Expect(combined).To(Equal(split))
		})

		It("copies by value", func() {
			a := rigidbody.Body[float64]{Vel: v3(1, 0, 0)}
			b := a
			b.Update(1)

			Expect(a.Pos).To(Equal(v3(0, 0, 0)))
			Expect(b.Pos).To(Equal(v3(1, 0, 0)))
		})

		It("works in single precision", func() {
			b := rigidbody.Body[float32]{
				Vel: vecmath.Vec3[float32](1, 0, 0),
				Acc: vecmath.Vec3[float32](0, -9.8, 0),
				Ori: rigidbody.Attitude[float32]{Axis: vecmath.Vec3[float32](0, 0, 1)},
			}
			b.Update(0.1)

			Expect(float64(b.Vel[1])).To(BeNumerically("~", -0.98, 1e-5))
			Expect(float64(b.Pos[0])).To(BeNumerically("~", 0.1, 1e-6))
			Expect(float64(b.Pos[1])).To(BeNumerically("~", -0.049, 1e-6))
		})
	})
})

var _ = Describe("Angular", func() {
	samples := []att{
		{Angle: 0, Axis: v3(0, 0, 1)},
		{Angle: 1.5, Axis: v3(1, 0, 0)},
		{Angle: -0.7, Axis: v3(0.2, -3, 4)},
		{Angle: 12, Axis: v3(0, 0, 0)},
	}

	It("is the identity when the rate is zero", func() {
		rates := []vec{v3(0, 0, 0), v3(1, 0, 0), v3(-5, 2, 9)}
		for _, a := range samples {
			for _, axis := range rates {
				for _, t := range []float64{0, 0.5, -3, 100} {
					Expect(rigidbody.Angular(a, att{Angle: 0, Axis: axis}, t)).To(Equal(a))
				}
			}
		}
	})

	It("is the identity at t=0", func() {
		b := att{Angle: 3.2, Axis: v3(0.3, 0.4, -1)}
		for _, a := range samples {
			Expect(rigidbody.Angular(a, b, 0)).To(Equal(a))
		}
	})

	DescribeTable("adds magnitudes along a shared unit axis",
		func(axis vec, a, rate, t float64) {
			got := rigidbody.Angular(att{Angle: a, Axis: axis}, att{Angle: rate, Axis: axis}, t)

			Expect(got.Angle).To(BeNumerically("~", a+rate*t, 1e-12))
			Expect(got.Axis).To(beNear(axis, 1e-12))
		},
		Entry("z axis", v3(0, 0, 1), 0.0, 1.0, 0.5),
		Entry("oblique axis", v3(0.6, 0.8, 0), 2.0, -0.3, 4.0),
		Entry("negative t", v3(0, -1, 0), 1.0, 2.0, -0.25),
	)

	It("rotates the axis with Rodrigues' formula", func() {
		a := att{Angle: 0.5, Axis: v3(1, 0, 0)}
		b := att{Angle: math.Pi / 2, Axis: v3(0, 0, 1)}
		got := rigidbody.Angular(a, b, 1)

		Expect(got.Axis).To(beNear(v3(0, 1, 0), 1e-12))
		Expect(got.Angle).To(Equal(0.5))
	})

	It("agrees with a quaternion rotation for unit rate axes", func() {
		a := att{Angle: 0, Axis: v3(0.3, -0.5, 0.9)}
		b := att{Angle: 0.8, Axis: v3(0, 0.6, 0.8)}
		t := 1.7

		got := rigidbody.Angular(a, b, t)
		want := att{Angle: b.Angle * t, Axis: b.Axis}.Rotate(a.Axis.R3())

		Expect(got.Axis).To(beNear(vecmath.FromR3[float64](want), 1e-12))
		Expect(got.Axis.Norm()).To(BeNumerically("~", a.Axis.Norm(), 1e-12))
	})

	It("uses a non-unit rate axis as given", func() {
		a := att{Axis: v3(1, 0, 0)}
		b := att{Angle: math.Pi / 2, Axis: v3(0, 0, 2)}
		got := rigidbody.Angular(a, b, 1)

		Expect(got.Axis).To(beNear(v3(0, 2, 0), 1e-12))
	})

	It("couples the angle to axis alignment", func() {
		b := att{Angle: 1, Axis: v3(0, 0, 1)}

		orthogonal := rigidbody.Angular(att{Angle: 1, Axis: v3(1, 0, 0)}, b, 0.1)
		Expect(orthogonal.Angle).To(Equal(1.0))

		scaled := rigidbody.Angular(att{Angle: 1, Axis: v3(0, 0, 3)}, b, 0.1)
		Expect(scaled.Angle).To(BeNumerically("~", 1.3, 1e-12))
	})
})
