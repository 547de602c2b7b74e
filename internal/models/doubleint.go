package models

import (
	"github.com/san-kum/swarmdyn/internal/dynamo"
	"gonum.org/v1/gonum/num/dual"
)

// DoubleIntegrator is a planar point mass with state [x, y, vx, vy] and
// control [ax, ay].
type DoubleIntegrator struct {
	dynamo.Meta
}

func NewDoubleIntegrator(dt float64, id ...int) *DoubleIntegrator {
	return &DoubleIntegrator{Meta: dynamo.NewMeta(4, 2, dt, id...)}
}

func (m *DoubleIntegrator) Derive(x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	if err := m.CheckArgs(x, u); err != nil {
		return nil, err
	}
	return dynamo.State{x[2], x[3], u[0], u[1]}, nil
}

func (m *DoubleIntegrator) DeriveDual(x, u []dual.Number) []dual.Number {
	return []dual.Number{x[2], x[3], u[0], u[1]}
}

func (m *DoubleIntegrator) String() string { return m.Describe("DoubleIntegrator") }
