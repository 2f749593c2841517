package forces

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/rigidbody"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

type Body = rigidbody.Body[float64]

// ErrDragWithoutGravity is returned by FromConfig for a drag field that no
// gravity field precedes. Drag adds to Acc, so without a field resetting Acc
// every tick it would accumulate.
var ErrDragWithoutGravity = errors.New("forces: drag must follow a gravity field")

type Field interface {
	Apply(b *Body, t float64)
}

type None struct{}

func (None) Apply(*Body, float64) {}

// Gravity overwrites Acc with G.
type Gravity struct {
	G vecmath.Vector3[float64]
}

func NewGravity(g float64) Gravity {
	return Gravity{G: vecmath.Vec3(0, -g, 0)}
}

func (g Gravity) Apply(b *Body, _ float64) {
	b.Acc = g.G
}

// Spin overwrites Wre with Wrench.
type Spin struct {
	Wrench rigidbody.Attitude[float64]
}

func (s Spin) Apply(b *Body, _ float64) {
	b.Wre = s.Wrench
}

// Drag adds -K*Vel to the acceleration already set on the body.
// Place it after the field that sets Acc.
type Drag struct {
	K float64
}

func (d Drag) Apply(b *Body, _ float64) {
	b.Acc = b.Acc.Add(b.Vel.Scale(-d.K))
}

type Composite []Field

func (c Composite) Apply(b *Body, t float64) {
	for _, f := range c {
		f.Apply(b, t)
	}
}

// FromConfig builds the field list of a scenario. An empty list gives None.
// A drag field is only accepted after a gravity field.
func FromConfig(cfgs []config.FieldConfig) (Field, error) {
	if len(cfgs) == 0 {
		return None{}, nil
	}

	fields := make(Composite, 0, len(cfgs))
	setsAcc := false
	for i, fc := range cfgs {
		f, err := fromOne(fc)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		switch f.(type) {
		case Gravity:
			setsAcc = true
		case Drag:
			if !setsAcc {
				return nil, fmt.Errorf("field %d: %w", i, ErrDragWithoutGravity)
			}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func fromOne(fc config.FieldConfig) (Field, error) {
	switch fc.Type {
	case "gravity":
		if fc.Vector == ([3]float64{}) {
			return NewGravity(fc.Magnitude), nil
		}
		return Gravity{G: fc.Vector}, nil
	case "spin":
		return Spin{Wrench: rigidbody.Attitude[float64]{Angle: fc.Magnitude, Axis: fc.Vector}}, nil
	case "drag":
		if fc.Magnitude < 0 {
			return nil, fmt.Errorf("drag coefficient must be non-negative, got %f", fc.Magnitude)
		}
		return Drag{K: fc.Magnitude}, nil
	case "none", "":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown field type: %s", fc.Type)
	}
}

// GravityOf returns the uniform acceleration a field imposes, or zero when
// it has no Gravity component. The last Gravity in a Composite wins.
func GravityOf(f Field) vecmath.Vector3[float64] {
	switch f := f.(type) {
	case Gravity:
		return f.G
	case Composite:
		var g vecmath.Vector3[float64]
		for _, sub := range f {
			if _, ok := sub.(Gravity); ok {
				g = GravityOf(sub)
			}
		}
		return g
	}
	return vecmath.Vector3[float64]{}
}
