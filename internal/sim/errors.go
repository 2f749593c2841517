package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a body whose state holds NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive dt or duration.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrEmptyWorld indicates a world with no bodies.
	ErrEmptyWorld = errors.New("sim: world has no bodies")
)

// SimulationError wraps an error with the step, time and body it came from.
type SimulationError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) body %q: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
