package models

import (
	"math"

	"github.com/san-kum/swarmdyn/internal/dynamo"
	"gonum.org/v1/gonum/num/dual"
)

// Bike is an extended kinematic bicycle with state [x, y, v, theta, phi]
// (phi is the steering angle) and control [a, phi_dot]. The heading rate is
// tan(phi), which blows up as phi approaches pi/2; a non-finite derivative
// there propagates to the caller rather than being clamped.
type Bike struct {
	dynamo.Meta
}

func NewBike(dt float64, id ...int) *Bike {
	return &Bike{Meta: dynamo.NewMeta(5, 2, dt, id...)}
}

func (m *Bike) Derive(x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	if err := m.CheckArgs(x, u); err != nil {
		return nil, err
	}
	v, theta, phi := x[2], x[3], x[4]
	a, phiDot := u[0], u[1]
	return dynamo.State{
		v * math.Cos(theta),
		v * math.Sin(theta),
		a,
		math.Tan(phi),
		phiDot,
	}, nil
}

func (m *Bike) DeriveDual(x, u []dual.Number) []dual.Number {
	return []dual.Number{
		dual.Mul(x[2], dual.Cos(x[3])),
		dual.Mul(x[2], dual.Sin(x[3])),
		u[0],
		dual.Tan(x[4]),
		u[1],
	}
}

func (m *Bike) String() string { return m.Describe("Bike") }
