package scenario

import (
	"context"

	"github.com/san-kum/swarmdyn/internal/dynamo"
)

// Result holds a forward simulation of a scenario. States has one more
// entry than Controls: the initial state plus one per applied control.
type Result struct {
	States   []dynamo.State
	Controls []dynamo.Control
	Times    []float64
	Metrics  map[string]float64
}

// Metric observes a rollout step by step and reduces it to one number.
type Metric interface {
	Name() string
	Observe(x dynamo.State, u dynamo.Control, t float64)
	Value() float64
	Reset()
}

// Rollout advances the model over the whole control sequence with the
// shared zero-order-hold step. A non-finite state aborts the rollout with
// the step error.
func Rollout(ctx context.Context, m dynamo.Model, x0 dynamo.State, us []dynamo.Control, metrics ...Metric) (*Result, error) {
	result := &Result{
		States:   make([]dynamo.State, 0, len(us)+1),
		Controls: make([]dynamo.Control, 0, len(us)),
		Times:    make([]float64, 0, len(us)+1),
		Metrics:  make(map[string]float64),
	}

	for _, met := range metrics {
		met.Reset()
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for _, u := range us {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, met := range metrics {
			met.Observe(x, u, t)
		}

		next, err := dynamo.Step(m, x, u)
		if err != nil {
			return result, err
		}

		x = next
		t += m.Dt()
		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u.Clone())
		result.Times = append(result.Times, t)
	}

	for _, met := range metrics {
		result.Metrics[met.Name()] = met.Value()
	}
	return result, nil
}
