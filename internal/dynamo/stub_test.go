package dynamo

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// spiral is a nonlinear 2-state, 1-control test system:
// dx0 = sin(x1) + u0, dx1 = x0*x1. Its Jacobians are known in closed form,
// so every differentiation path can be checked against the truth.
type spiral struct{ Meta }

func newSpiral(dt float64, id ...int) *spiral {
	return &spiral{NewMeta(2, 1, dt, id...)}
}

func (s *spiral) Derive(x State, u Control) (State, error) {
	if err := s.CheckArgs(x, u); err != nil {
		return nil, err
	}
	return State{math.Sin(x[1]) + u[0], x[0] * x[1]}, nil
}

func (s *spiral) DeriveDual(x, u []dual.Number) []dual.Number {
	return []dual.Number{
		dual.Add(dual.Sin(x[1]), u[0]),
		dual.Mul(x[0], x[1]),
	}
}

func (s *spiral) String() string { return s.Describe("spiral") }

// spiralTruth returns the exact continuous Jacobians of spiral.
func spiralTruth(x State) (a [][]float64, b [][]float64) {
	a = [][]float64{
		{0, math.Cos(x[1])},
		{x[1], x[0]},
	}
	b = [][]float64{{1}, {0}}
	return a, b
}

// drift is the spiral system without dual support, forcing the
// finite-difference fallback in Linearize.
type drift struct{ Meta }

func newDrift(dt float64, id ...int) *drift {
	return &drift{NewMeta(2, 1, dt, id...)}
}

func (d *drift) Derive(x State, u Control) (State, error) {
	if err := d.CheckArgs(x, u); err != nil {
		return nil, err
	}
	return State{math.Sin(x[1]) + u[0], x[0] * x[1]}, nil
}

func (d *drift) String() string { return d.Describe("drift") }

// nanSys always produces a non-finite derivative.
type nanSys struct{ Meta }

func newNaNSys(dt float64) *nanSys {
	return &nanSys{NewMeta(2, 1, dt, 99)}
}

func (n *nanSys) Derive(x State, u Control) (State, error) {
	if err := n.CheckArgs(x, u); err != nil {
		return nil, err
	}
	return State{math.NaN(), math.NaN()}, nil
}

func (n *nanSys) String() string { return n.Describe("nanSys") }
