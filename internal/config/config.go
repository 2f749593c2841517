package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/rigidbody"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultGravity  = 9.81
	DefaultWorkers  = 1
)

var (
	ErrNoBodies    = errors.New("config: scenario has no bodies")
	ErrInvalidStep = errors.New("config: dt and duration must be positive")
	ErrDuplicate   = errors.New("config: duplicate body name")
)

type Config struct {
	Name     string        `yaml:"name"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Seed     int64         `yaml:"seed"`
	Workers  int           `yaml:"workers"`
	Jitter   float64       `yaml:"jitter,omitempty"`
	Bodies   []BodyConfig  `yaml:"bodies"`
	Fields   []FieldConfig `yaml:"fields,omitempty"`
}

// AttitudeConfig is an angle with its axis. The axis is used as written.
type AttitudeConfig struct {
	Angle float64    `yaml:"angle"`
	Axis  [3]float64 `yaml:"axis,flow"`
}

type BodyConfig struct {
	Name string         `yaml:"name"`
	Pos  [3]float64     `yaml:"pos,flow"`
	Vel  [3]float64     `yaml:"vel,flow"`
	Acc  [3]float64     `yaml:"acc,flow"`
	Ori  AttitudeConfig `yaml:"ori"`
	Tor  AttitudeConfig `yaml:"tor"`
	Wre  AttitudeConfig `yaml:"wre"`
}

// FieldConfig describes one input field. Magnitude is the gravity strength,
// the wrench rate or the drag coefficient depending on Type.
type FieldConfig struct {
	Type      string     `yaml:"type"`
	Magnitude float64    `yaml:"magnitude,omitempty"`
	Vector    [3]float64 `yaml:"vector,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "freefall",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Workers:  DefaultWorkers,
		Bodies: []BodyConfig{{
			Name: "body",
			Vel:  [3]float64{1, 0, 0},
			Ori:  AttitudeConfig{Axis: [3]float64{0, 0, 1}},
		}},
		Fields: []FieldConfig{{Type: "gravity", Magnitude: DefaultGravity}},
	}
}

// Load reads a scenario file. Keys missing from the file keep their
// DefaultConfig values, except fields: a file without fields has none.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Fields = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 || c.Duration <= 0 {
		return fmt.Errorf("%w: dt=%g duration=%g", ErrInvalidStep, c.Dt, c.Duration)
	}
	if len(c.Bodies) == 0 {
		return ErrNoBodies
	}
	_, names := c.BuildBodies()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		seen[name] = true
	}
	return nil
}

func (a AttitudeConfig) Attitude() rigidbody.Attitude[float64] {
	return rigidbody.Attitude[float64]{Angle: a.Angle, Axis: a.Axis}
}

func (b BodyConfig) Body() rigidbody.Body[float64] {
	return rigidbody.Body[float64]{
		Pos: b.Pos,
		Vel: b.Vel,
		Acc: b.Acc,
		Ori: b.Ori.Attitude(),
		Tor: b.Tor.Attitude(),
		Wre: b.Wre.Attitude(),
	}
}

// BuildBodies returns the initial bodies and their names. Unnamed bodies
// are called body0, body1, ...
func (c *Config) BuildBodies() ([]rigidbody.Body[float64], []string) {
	bodies := make([]rigidbody.Body[float64], len(c.Bodies))
	names := make([]string, len(c.Bodies))
	for i, bc := range c.Bodies {
		bodies[i] = bc.Body()
		names[i] = bc.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("body%d", i)
		}
	}
	return bodies, names
}

func attitudeConfig(a rigidbody.Attitude[float64]) AttitudeConfig {
	return AttitudeConfig{Angle: a.Angle, Axis: a.Axis}
}

// FromBody converts a body back into its config form, e.g. to save the end
// state of a run as a new scenario.
func FromBody(name string, b rigidbody.Body[float64]) BodyConfig {
	return BodyConfig{
		Name: name,
		Pos:  b.Pos,
		Vel:  b.Vel,
		Acc:  b.Acc,
		Ori:  attitudeConfig(b.Ori),
		Tor:  attitudeConfig(b.Tor),
		Wre:  attitudeConfig(b.Wre),
	}
}
