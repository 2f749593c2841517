package metrics

import (
	"math"

	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// specificEnergy is kinetic plus potential energy per unit mass in a uniform
// field g, summed over all bodies.
func specificEnergy(w *sim.World, g vecmath.Vector3[float64]) float64 {
	total := 0.0
	for i := range w.Bodies {
		b := &w.Bodies[i]
		total += 0.5*b.Vel.Dot(b.Vel) - g.Dot(b.Pos)
	}
	return total
}

type Energy struct {
	name        string
	gravity     vecmath.Vector3[float64]
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity vecmath.Vector3[float64]) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *sim.World, t float64) {
	e.totalEnergy += specificEnergy(w, e.gravity)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change from the first observed
// energy. Only meaningful when the field is conservative.
type EnergyDrift struct {
	name          string
	gravity       vecmath.Vector3[float64]
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(gravity vecmath.Vector3[float64]) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: gravity,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *sim.World, t float64) {
	energy := specificEnergy(w, e.gravity)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
