package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt      = 0.1
	DefaultHorizon = 50
)

// Scenario describes a multi-agent roster: shared timestep, rollout
// horizon, one entry per agent and an optional interaction graph used by
// the split command.
type Scenario struct {
	Name    string        `yaml:"name"`
	Dt      float64       `yaml:"dt"`
	Horizon int           `yaml:"horizon"`
	Agents  []Agent       `yaml:"agents"`
	Graph   map[int][]int `yaml:"graph,omitempty"`
}

// Agent configures one roster entry. ID is optional; omitted ids are
// auto-assigned in roster order. U is a constant control held over the
// whole horizon, defaulting to zeros.
type Agent struct {
	Model string    `yaml:"model"`
	ID    *int      `yaml:"id,omitempty"`
	X0    []float64 `yaml:"x0"`
	U     []float64 `yaml:"u,omitempty"`
}

func Default() *Scenario {
	return &Scenario{
		Name:    "crossing",
		Dt:      DefaultDt,
		Horizon: DefaultHorizon,
		Agents: []Agent{
			{Model: "double_integrator", X0: []float64{0, 0, 1, 0}},
			{Model: "double_integrator", X0: []float64{10, 0, -1, 0}},
		},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Scenario{Dt: DefaultDt, Horizon: DefaultHorizon}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Scenario) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Scenario) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", c.Horizon)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("scenario needs at least one agent")
	}
	for i, a := range c.Agents {
		if a.Model == "" {
			return fmt.Errorf("agent %d: missing model name", i)
		}
	}
	return nil
}
