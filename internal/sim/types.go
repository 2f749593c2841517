package sim

import (
	"github.com/san-kum/rigidsim/internal/forces"
	"github.com/san-kum/rigidsim/internal/rigidbody"
)

type Body = rigidbody.Body[float64]

// World is the set of bodies one simulation advances. Names[i] labels
// Bodies[i].
type World struct {
	Names  []string
	Bodies []Body
}

func NewWorld(bodies []Body, names []string) *World {
	return &World{Names: names, Bodies: bodies}
}

func (w *World) Clone() *World {
	c := &World{
		Names:  make([]string, len(w.Names)),
		Bodies: make([]Body, len(w.Bodies)),
	}
	copy(c.Names, w.Names)
	copy(c.Bodies, w.Bodies)
	return c
}

func (w *World) Name(i int) string {
	if i < len(w.Names) {
		return w.Names[i]
	}
	return ""
}

type Field = forces.Field

type Metric interface {
	Name() string
	Observe(w *World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *World, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	Workers       int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Workers:       1,
		ValidateState: true,
	}
}

// Frame is a snapshot of every body at one time.
type Frame struct {
	Time   float64
	Bodies []Body
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Final returns the last recorded frame.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}
