package sim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/forces"
)

type Simulator struct {
	field     Field
	metrics   []Metric
	observers []Observer
	logger    *zap.Logger
}

type Option func(*Simulator)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a simulator that applies field to every body before each
// step. A nil field leaves Acc and Wre as they are.
func New(field Field, opts ...Option) *Simulator {
	if field == nil {
		field = forces.None{}
	}
	s := &Simulator{
		field:     field,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances a copy of w for cfg.Duration and records every frame. On
// cancellation the frames recorded so far are returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, w *World, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(w.Bodies) == 0 {
		return nil, ErrEmptyWorld
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	world := w.Clone()
	t := 0.0
	result.Frames = append(result.Frames, snapshot(world, t))

	s.logger.Debug("run started",
		zap.Int("bodies", len(world.Bodies)),
		zap.Int("steps", steps),
		zap.Float64("dt", cfg.Dt),
		zap.Int("workers", cfg.Workers))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(ctx, world, t, cfg.Dt, cfg.Workers); err != nil {
			return result, err
		}

		if cfg.ValidateState {
			if err := validate(world, i, t); err != nil {
				s.logger.Warn("state diverged", zap.Error(err))
				result.Errors = append(result.Errors, err)
				break
			}
		}

		t += cfg.Dt
		result.StepsTaken++
		result.Frames = append(result.Frames, snapshot(world, t))
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run finished", zap.Int("steps", result.StepsTaken), zap.Int("errors", len(result.Errors)))
	return result, nil
}

// Step applies the field at time t, notifies metrics and observers, then
// updates every body by dt. Bodies are stepped on up to workers goroutines.
func (s *Simulator) Step(ctx context.Context, w *World, t, dt float64, workers int) error {
	for i := range w.Bodies {
		s.field.Apply(&w.Bodies[i], t)
	}

	for _, m := range s.metrics {
		m.Observe(w, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(w, t)
	}

	return StepParallel(ctx, w.Bodies, dt, workers)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

func validate(w *World, step int, t float64) error {
	for i := range w.Bodies {
		if !w.Bodies[i].IsValid() {
			return &SimulationError{Step: step, Time: t, Body: w.Name(i), Wrapped: ErrInvalidState}
		}
	}
	return nil
}

func snapshot(w *World, t float64) Frame {
	bodies := make([]Body, len(w.Bodies))
	copy(bodies, w.Bodies)
	return Frame{Time: t, Bodies: bodies}
}
