package metrics

import (
	"math"

	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(w *sim.World, t float64) {
	for i := range w.Bodies {
		m.max = math.Max(m.max, w.Bodies[i].Vel.Norm())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// AngleTravel sums |Δ Ori.Angle| over all bodies between observations.
type AngleTravel struct {
	name  string
	last  []float64
	total float64
}

func NewAngleTravel() *AngleTravel {
	return &AngleTravel{name: "angle_travel"}
}

func (a *AngleTravel) Name() string { return a.name }

func (a *AngleTravel) Observe(w *sim.World, t float64) {
	if len(a.last) != len(w.Bodies) {
		a.last = make([]float64, len(w.Bodies))
		for i := range w.Bodies {
			a.last[i] = w.Bodies[i].Ori.Angle
		}
		return
	}
	for i := range w.Bodies {
		angle := w.Bodies[i].Ori.Angle
		a.total += math.Abs(angle - a.last[i])
		a.last[i] = angle
	}
}

func (a *AngleTravel) Value() float64 { return a.total }

func (a *AngleTravel) Reset() {
	a.last = nil
	a.total = 0
}

// InputEffort is the mean over samples of the summed |Acc| and |Wre.Angle|
// the field applied.
type InputEffort struct {
	name    string
	sum     float64
	samples int
}

func NewInputEffort() *InputEffort {
	return &InputEffort{name: "input_effort"}
}

func (c *InputEffort) Name() string { return c.name }

func (c *InputEffort) Observe(w *sim.World, t float64) {
	for i := range w.Bodies {
		c.sum += w.Bodies[i].Acc.Norm() + math.Abs(w.Bodies[i].Wre.Angle)
	}
	c.samples++
}

func (c *InputEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *InputEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// Default returns the metrics recorded for every run.
func Default(gravity vecmath.Vector3[float64]) []sim.Metric {
	return []sim.Metric{
		NewEnergy(gravity),
		NewEnergyDrift(gravity),
		NewStability(1e3),
		NewMaxSpeed(),
		NewAngleTravel(),
		NewInputEffort(),
	}
}
