package pond

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// SweepPoint is one hydronic flow of a sweep.
type SweepPoint struct {
	FlowH  float64 `json:"flow_h"` // hydronic flow, L/min
	Result Result  `json:"result"`
}

var ErrEmptyRange = errors.New("empty flow range")

/*
FlowRange lists hydronic flows from from to to inclusive.

	Args:
		from: first flow, L/min
		to: last flow, L/min
		step: increment, L/min

	Returns:
		flows, L/min
*/
func FlowRange(from, to, step float64) ([]float64, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("step = %g: %w", step, ErrNonPositive)
	}
	if to < from {
		return nil, fmt.Errorf("from %g > to %g: %w", from, to, ErrEmptyRange)
	}

	n := int((to-from)/step+1e-9) + 1
	flows := make([]float64, n)
	for i := range flows {
		// from + i·step keeps rounding from accumulating
		flows[i] = from + float64(i)*step
	}
	return flows, nil
}

type sweepTask struct {
	i    int
	flow float64
}

/*
Sweep solves p once per hydronic flow.

	Args:
		ctx: cancels the remaining solves
		s: solver
		p: installation; FlowH is replaced by each flow
		flows: hydronic flows, L/min
		workers: number of goroutines, GOMAXPROCS when <= 0

	Returns:
		one point per flow, in the order of flows
*/
func Sweep(ctx context.Context, s *Solver, p Params, flows []float64, workers int) ([]SweepPoint, error) {
	if len(flows) == 0 {
		return nil, ErrEmptyRange
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(flows) {
		workers = len(flows)
	}

	points := make([]SweepPoint, len(flows))
	tasks := make(chan sweepTask)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				q := p
				q.FlowH = t.flow
				points[t.i] = SweepPoint{FlowH: t.flow, Result: s.Solve(q)}
			}
		}()
	}

	var err error
dispatch:
	for i, f := range flows {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case tasks <- sweepTask{i: i, flow: f}:
		}
	}
	close(tasks)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return points, nil
}
