package rigidbody_test

import (
	"testing"

	"github.com/san-kum/rigidsim/internal/rigidbody"
)

func bodyAt(pos vec) rigidbody.Body[float64] {
	return rigidbody.Body[float64]{
		Pos: pos,
		Vel: v3(1, 0, 0),
		Acc: v3(0, -9.8, 0),
		Ori: att{Angle: 0, Axis: v3(0, 0, 1)},
		Tor: att{Angle: 0.5, Axis: v3(0, 1, 0)},
		Wre: att{Angle: 0.1, Axis: v3(1, 0, 0)},
	}
}

func BenchmarkUpdate(b *testing.B) {
	body := bodyAt(v3(0, 0, 0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body.Update(0.001)
	}
}

func BenchmarkUpdateLinear(b *testing.B) {
	body := bodyAt(v3(0, 0, 0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body.UpdateLinear(0.001)
	}
}

func BenchmarkAngular(b *testing.B) {
	a := att{Angle: 0, Axis: v3(0, 0, 1)}
	r := att{Angle: 0.5, Axis: v3(0, 1, 0)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a = rigidbody.Angular(a, r, 0.001)
	}
}

func BenchmarkUpdate_Float32(b *testing.B) {
	body := rigidbody.Body[float32]{
		Vel: [3]float32{1, 0, 0},
		Acc: [3]float32{0, -9.8, 0},
		Ori: rigidbody.Attitude[float32]{Axis: [3]float32{0, 0, 1}},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body.Update(0.001)
	}
}
