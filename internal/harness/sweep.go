package harness

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SweepSpec evaluates one tuning parameter at several values.
type SweepSpec struct {
	// Base is the run template; its Candidate is the starting point for
	// every value. Reporter and per-game saving are ignored.
	Base   Spec
	Param  string
	Values []float64
	// Workers bounds concurrent points; <= 0 means one per value.
	Workers int
	// Progress is called after each finished point. It may be called
	// from several goroutines.
	Progress func(done, total int)
}

// SweepPoint is the outcome of one parameter value.
type SweepPoint struct {
	Param   string
	Value   float64
	Summary Summary
}

// Sweep runs every value concurrently. Each point owns its own copy of the
// tuning, so points never observe each other. Results keep the order of Values.
func Sweep(ctx context.Context, spec SweepSpec) ([]SweepPoint, error) {
	if len(spec.Values) == 0 {
		return nil, fmt.Errorf("harness: sweep %s: no values", spec.Param)
	}

	runID := spec.Base.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	runs := make([]Spec, len(spec.Values))
	for i, v := range spec.Values {
		cfg, err := spec.Base.Candidate.WithParam(spec.Param, v)
		if err != nil {
			return nil, fmt.Errorf("harness: sweep %s=%g: %w", spec.Param, v, err)
		}
		run := spec.Base
		run.RunID = runID
		run.Candidate = cfg
		run.Reporter = nil
		run.Saver = nil
		runs[i] = run
	}

	workers := spec.Workers
	if workers <= 0 {
		workers = len(runs)
	}

	points := make([]SweepPoint, len(runs))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range runs {
		i := i
		g.Go(func() error {
			sum, err := Run(ctx, runs[i])
			if err != nil {
				return fmt.Errorf("harness: sweep %s=%g: %w", spec.Param, spec.Values[i], err)
			}
			points[i] = SweepPoint{Param: spec.Param, Value: spec.Values[i], Summary: sum}

			if spec.Base.Saver != nil {
				if err := spec.Base.Saver.SaveSweepPoint(ctx, runID, points[i]); err != nil {
					return fmt.Errorf("harness: save sweep point: %w", err)
				}
			}
			if spec.Progress != nil {
				spec.Progress(int(done.Add(1)), len(runs))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Best returns the point with the highest win rate. Ties go to fewer
// collapses, then fewer oscillations, then the lower value, the same order
// the store uses for its best point.
func Best(points []SweepPoint) (SweepPoint, bool) {
	if len(points) == 0 {
		return SweepPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if betterPoint(p, best) {
			best = p
		}
	}
	return best, true
}

func betterPoint(p, q SweepPoint) bool {
	a, b := p.Summary, q.Summary
	switch {
	case a.WinRate() != b.WinRate():
		return a.WinRate() > b.WinRate()
	case a.Collapses != b.Collapses:
		return a.Collapses < b.Collapses
	case a.Oscillations != b.Oscillations:
		return a.Oscillations < b.Oscillations
	}
	return p.Value < q.Value
}
