package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/forces"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
)

// Experiment ties a scenario to the simulator that runs it.
type Experiment struct {
	cfg       *config.Config
	world     *sim.World
	field     sim.Field
	simulator *sim.Simulator
	logger    *zap.Logger
}

// New validates cfg and builds the world, fields and simulator with the
// default metrics attached.
func New(cfg *config.Config, logger *zap.Logger) (*Experiment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	field, err := forces.FromConfig(cfg.Fields)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", cfg.Name, err)
	}

	bodies, names := cfg.BuildBodies()
	s := sim.New(field, sim.WithLogger(logger.Named("sim")))
	for _, m := range metrics.Default(forces.GravityOf(field)) {
		s.AddMetric(m)
	}

	return &Experiment{
		cfg:       cfg,
		world:     sim.NewWorld(bodies, names),
		field:     field,
		simulator: s,
		logger:    logger,
	}, nil
}

func (e *Experiment) simConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		Seed:          e.cfg.Seed,
		Workers:       e.cfg.Workers,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	e.logger.Info("running scenario",
		zap.String("scenario", e.cfg.Name),
		zap.Int("bodies", len(e.world.Bodies)),
		zap.Float64("dt", e.cfg.Dt),
		zap.Float64("duration", e.cfg.Duration))

	result, err := e.simulator.Run(ctx, e.world, e.simConfig())
	if err != nil {
		return result, err
	}
	for _, runErr := range result.Errors {
		e.logger.Warn("run error", zap.Error(runErr))
	}
	return result, nil
}

// RunEnsemble runs n perturbed copies of the scenario using cfg.Jitter.
func (e *Experiment) RunEnsemble(ctx context.Context, n int) ([]*sim.Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ensemble size must be positive, got %d", n)
	}
	ens := sim.NewEnsemble(sim.New(e.field, sim.WithLogger(e.logger.Named("ensemble"))), n, e.cfg.Seed, e.cfg.Jitter)
	return ens.Run(ctx, e.world, e.simConfig())
}

// Metadata describes the run for storage.
func (e *Experiment) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Scenario: e.cfg.Name,
		Seed:     e.cfg.Seed,
		Dt:       e.cfg.Dt,
		Duration: e.cfg.Duration,
		Workers:  e.cfg.Workers,
		Bodies:   append([]string(nil), e.world.Names...),
	}
}

func (e *Experiment) World() *sim.World {
	return e.world.Clone()
}

// Simulator returns the underlying simulator for adding observers
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
