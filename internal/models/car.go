package models

import (
	"math"

	"github.com/san-kum/swarmdyn/internal/dynamo"
	"gonum.org/v1/gonum/num/dual"
)

// Car is a simplified kinematic car with state [x, y, theta] and control
// [v, omega]: heading and position only, speed commanded directly.
type Car struct {
	dynamo.Meta
}

func NewCar(dt float64, id ...int) *Car {
	return &Car{Meta: dynamo.NewMeta(3, 2, dt, id...)}
}

func (m *Car) Derive(x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	if err := m.CheckArgs(x, u); err != nil {
		return nil, err
	}
	theta := x[2]
	v, omega := u[0], u[1]
	return dynamo.State{v * math.Cos(theta), v * math.Sin(theta), omega}, nil
}

func (m *Car) DeriveDual(x, u []dual.Number) []dual.Number {
	return []dual.Number{
		dual.Mul(u[0], dual.Cos(x[2])),
		dual.Mul(u[0], dual.Sin(x[2])),
		u[1],
	}
}

func (m *Car) String() string { return m.Describe("Car") }
