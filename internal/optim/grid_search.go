package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/experiment"
)

var (
	ErrUnknownParam  = errors.New("optim: unknown parameter")
	ErrUnknownMetric = errors.New("optim: metric not recorded")
	ErrNoPoints      = errors.New("optim: no grid point ran successfully")
)

// Param is one axis of the grid.
type Param struct {
	Name   string
	Values []float64
}

// ParseParam reads "name=v1,v2,...".
func ParseParam(s string) (Param, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return Param{}, fmt.Errorf("parameter %q: want name=v1,v2,...", s)
	}

	p := Param{Name: strings.TrimSpace(name)}
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Param{}, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		p.Values = append(p.Values, v)
	}
	return p, nil
}

// Apply returns a copy of base with params set. Known names are dt,
// duration, workers and the magnitude of the gravity, spin or drag field.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := *base
	cfg.Bodies = append([]config.BodyConfig(nil), base.Bodies...)
	cfg.Fields = append([]config.FieldConfig(nil), base.Fields...)

	for name, v := range params {
		switch name {
		case "dt":
			cfg.Dt = v
		case "duration":
			cfg.Duration = v
		case "workers":
			cfg.Workers = int(v)
		case "gravity", "spin", "drag":
			found := false
			for i := range cfg.Fields {
				if cfg.Fields[i].Type != name {
					continue
				}
				found = true
				cfg.Fields[i].Magnitude = v
				if name == "gravity" {
					cfg.Fields[i].Vector = [3]float64{}
				}
			}
			if !found {
				return nil, fmt.Errorf("%w: scenario %s has no %s field", ErrUnknownParam, cfg.Name, name)
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
	}
	return &cfg, nil
}

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	params  []Param
	workers int
}

// NewGridSearch returns a search over the cartesian product of params,
// evaluating up to workers points at once.
func NewGridSearch(params []Param, workers int) *GridSearch {
	return &GridSearch{params: params, workers: max(workers, 1)}
}

// Points lists every grid point in order, the last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := []map[string]float64{{}}
	for _, p := range g.params {
		next := make([]map[string]float64, 0, len(points)*len(p.Values))
		for _, cur := range points {
			for _, v := range p.Values {
				pt := make(map[string]float64, len(cur)+1)
				for k, x := range cur {
					pt[k] = x
				}
				pt[p.Name] = v
				next = append(next, pt)
			}
		}
		points = next
	}
	return points
}

// Search runs an experiment per grid point and returns the point with the
// lowest value of metric, together with every evaluated point. Points that
// fail to build, run or diverge carry their error and are not candidates.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*experiment.Experiment, error),
	metric string,
) (Point, []Point, error) {
	grid := g.Points()
	results := make([]Point, len(grid))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, params := range grid {
		i, params := i, params
		eg.Go(func() error {
			results[i] = evaluate(ctx, build, params, metric)
			return ctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return Point{}, results, err
	}

	best := Point{Value: math.Inf(1)}
	for _, r := range results {
		if r.Err == nil && r.Value < best.Value {
			best = r
		}
	}
	if best.Params == nil {
		return Point{}, results, ErrNoPoints
	}
	return best, results, nil
}

func evaluate(
	ctx context.Context,
	build func(map[string]float64) (*experiment.Experiment, error),
	params map[string]float64,
	metric string,
) Point {
	pt := Point{Params: params}

	exp, err := build(params)
	if err != nil {
		pt.Err = err
		return pt
	}

	result, err := exp.Run(ctx)
	if err != nil {
		pt.Err = err
		return pt
	}
	if len(result.Errors) > 0 {
		pt.Err = result.Errors[0]
		return pt
	}

	val, ok := result.Metrics[metric]
	if !ok {
		pt.Err = fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
		return pt
	}
	pt.Value = val
	return pt
}
