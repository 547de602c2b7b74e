package models

import (
	"math"

	"github.com/san-kum/swarmdyn/internal/dynamo"
	"gonum.org/v1/gonum/num/dual"
)

// Unicycle has state [x, y, v, theta] and control [a, omega].
type Unicycle struct {
	dynamo.Meta
}

func NewUnicycle(dt float64, id ...int) *Unicycle {
	return &Unicycle{Meta: dynamo.NewMeta(4, 2, dt, id...)}
}

func (m *Unicycle) Derive(x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	if err := m.CheckArgs(x, u); err != nil {
		return nil, err
	}
	v, theta := x[2], x[3]
	a, omega := u[0], u[1]
	return dynamo.State{v * math.Cos(theta), v * math.Sin(theta), a, omega}, nil
}

func (m *Unicycle) DeriveDual(x, u []dual.Number) []dual.Number {
	return []dual.Number{
		dual.Mul(x[2], dual.Cos(x[3])),
		dual.Mul(x[2], dual.Sin(x[3])),
		u[0],
		u[1],
	}
}

func (m *Unicycle) String() string { return m.Describe("Unicycle") }
