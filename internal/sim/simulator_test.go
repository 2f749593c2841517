package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/forces"
	"github.com/san-kum/rigidsim/internal/rigidbody"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

func thrownWorld() *World {
	return NewWorld([]Body{{
		Vel: vecmath.Vec3(1.0, 0.0, 0.0),
		Ori: rigidbody.Attitude[float64]{Axis: vecmath.Vec3(0.0, 0.0, 1.0)},
	}}, []string{"ball"})
}

func TestSimulatorRun(t *testing.T) {
	s := New(forces.Gravity{G: vecmath.Vec3(0.0, -9.8, 0.0)})
	cfg := Config{Dt: 0.1, Duration: 1.0}

	result, err := s.Run(context.Background(), thrownWorld(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	final := result.Final()
	if math.Abs(final.Time-1.0) > 1e-9 {
		t.Errorf("expected final time 1.0, got %f", final.Time)
	}

	b := final.Bodies[0]
	want := vecmath.Vec3(1.0, -4.9, 0.0)
	if !b.Pos.Near(want, 1e-9) {
		t.Errorf("expected final pos %v, got %v", want, b.Pos)
	}
	if !b.Vel.Near(vecmath.Vec3(1.0, -9.8, 0.0), 1e-9) {
		t.Errorf("expected final vel (1,-9.8,0), got %v", b.Vel)
	}
}

func TestSimulatorRun_DoesNotMutateInput(t *testing.T) {
	w := thrownWorld()
	s := New(forces.NewGravity(9.8))

	if _, err := s.Run(context.Background(), w, Config{Dt: 0.1, Duration: 1.0}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if w.Bodies[0].Pos != (vecmath.Vector3[float64]{}) {
		t.Errorf("input world was mutated: %v", w.Bodies[0].Pos)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), thrownWorld(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorEmptyWorld(t *testing.T) {
	_, err := New(nil).Run(context.Background(), NewWorld(nil, nil), DefaultConfig())
	if !errors.Is(err, ErrEmptyWorld) {
		t.Errorf("expected ErrEmptyWorld, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(nil).Run(ctx, thrownWorld(), DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Frames) != 1 {
		t.Errorf("expected only the initial frame, got %d", len(result.Frames))
	}
}

func TestSimulatorValidateState(t *testing.T) {
	w := thrownWorld()
	w.Bodies[0].Vel[0] = math.Inf(1)

	result, err := New(nil).Run(context.Background(), w, Config{Dt: 0.1, Duration: 1.0, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}

	var simErr *SimulationError
	if !errors.As(result.Errors[0], &simErr) {
		t.Fatalf("expected SimulationError, got %T", result.Errors[0])
	}
	if simErr.Body != "ball" || simErr.Step != 0 {
		t.Errorf("unexpected error context: %+v", simErr)
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Error("expected error to wrap ErrInvalidState")
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected run to stop, took %d steps", result.StepsTaken)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(w *World, t float64) {
	m.count++
	m.sum += w.Bodies[0].Pos[0]
}
func (m *testMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *testMetric) Reset() {
	m.count = 0
	m.sum = 0
}

type countingObserver struct{ calls int }

func (o *countingObserver) OnStep(*World, float64) { o.calls++ }

func TestSimulatorMetrics(t *testing.T) {
	s := New(nil)

	metric := &testMetric{}
	obs := &countingObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), thrownWorld(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if obs.calls != 10 {
		t.Errorf("expected 10 observer calls, got %d", obs.calls)
	}
}

func TestSimulatorSpin(t *testing.T) {
	w := NewWorld([]Body{{
		Ori: rigidbody.Attitude[float64]{Axis: vecmath.Vec3(0.0, 0.0, 1.0)},
		Tor: rigidbody.Attitude[float64]{Axis: vecmath.Vec3(0.0, 0.0, 1.0)},
	}}, nil)
	s := New(forces.Spin{Wrench: rigidbody.Attitude[float64]{Angle: 2, Axis: vecmath.Vec3(0.0, 0.0, 1.0)}})

	result, err := s.Run(context.Background(), w, Config{Dt: 0.01, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	b := result.Final().Bodies[0]
	if math.Abs(b.Tor.Angle-2.0) > 1e-9 {
		t.Errorf("expected torque rate 2, got %f", b.Tor.Angle)
	}
	// constant angular acceleration about a fixed axis: angle = a*t^2/2
	if math.Abs(b.Ori.Angle-1.0) > 1e-9 {
		t.Errorf("expected orientation angle 1, got %f", b.Ori.Angle)
	}
}
