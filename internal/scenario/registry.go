package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/swarmdyn/internal/config"
	"github.com/san-kum/swarmdyn/internal/dynamo"
	"github.com/san-kum/swarmdyn/internal/models"
)

// Builder constructs one agent model. An explicit id overrides the
// auto-assigned one.
type Builder func(dt float64, id ...int) dynamo.Model

type Registry struct {
	models map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]Builder)}

	r.models["double_integrator"] = func(dt float64, id ...int) dynamo.Model { return models.NewDoubleIntegrator(dt, id...) }
	r.models["car"] = func(dt float64, id ...int) dynamo.Model { return models.NewCar(dt, id...) }
	r.models["unicycle"] = func(dt float64, id ...int) dynamo.Model { return models.NewUnicycle(dt, id...) }
	r.models["analytic_unicycle"] = func(dt float64, id ...int) dynamo.Model { return models.NewAnalyticUnicycle(dt, id...) }
	r.models["bike"] = func(dt float64, id ...int) dynamo.Model { return models.NewBike(dt, id...) }

	return r
}

func (r *Registry) Get(name string) (Builder, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build turns a scenario config into the joint model, the initial joint
// state and the per-step joint control sequence. Agent ids reset to zero
// first so a scenario is reproducible run to run.
func (r *Registry) Build(cfg *config.Scenario) (*dynamo.MultiModel, dynamo.State, []dynamo.Control, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	dynamo.ResetIDs()

	roster := make([]dynamo.Model, 0, len(cfg.Agents))
	x0 := make(dynamo.State, 0)
	uStep := make(dynamo.Control, 0)

	for i, a := range cfg.Agents {
		build, err := r.Get(a.Model)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("agent %d: %w", i, err)
		}

		var m dynamo.Model
		if a.ID != nil {
			m = build(cfg.Dt, *a.ID)
		} else {
			m = build(cfg.Dt)
		}

		if len(a.X0) != m.StateDim() {
			return nil, nil, nil, fmt.Errorf("agent %d: %w: x0 has %d entries, %s wants %d",
				i, dynamo.ErrDimensionMismatch, len(a.X0), m, m.StateDim())
		}
		u := a.U
		if u == nil {
			u = make([]float64, m.ControlDim())
		}
		if len(u) != m.ControlDim() {
			return nil, nil, nil, fmt.Errorf("agent %d: %w: u has %d entries, %s wants %d",
				i, dynamo.ErrDimensionMismatch, len(u), m, m.ControlDim())
		}

		roster = append(roster, m)
		x0 = append(x0, a.X0...)
		uStep = append(uStep, u...)
	}

	joint, err := dynamo.NewMultiModel(roster)
	if err != nil {
		return nil, nil, nil, err
	}

	us := make([]dynamo.Control, cfg.Horizon)
	for t := range us {
		us[t] = uStep.Clone()
	}
	return joint, x0, us, nil
}
