package models

import (
	"math"

	"github.com/san-kum/swarmdyn/internal/dynamo"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
)

// AnalyticUnicycle shares the Unicycle dynamics but carries closed-form
// continuous-time Jacobians derived offline, so Linearize evaluates them
// directly instead of differentiating. Must stay numerically identical to
// the differentiated Unicycle; the model tests hold the two against each
// other.
type AnalyticUnicycle struct {
	dynamo.Meta
}

func NewAnalyticUnicycle(dt float64, id ...int) *AnalyticUnicycle {
	return &AnalyticUnicycle{Meta: dynamo.NewMeta(4, 2, dt, id...)}
}

func (m *AnalyticUnicycle) Derive(x dynamo.State, u dynamo.Control) (dynamo.State, error) {
	if err := m.CheckArgs(x, u); err != nil {
		return nil, err
	}
	v, theta := x[2], x[3]
	return dynamo.State{v * math.Cos(theta), v * math.Sin(theta), u[0], u[1]}, nil
}

func (m *AnalyticUnicycle) DeriveDual(x, u []dual.Number) []dual.Number {
	return []dual.Number{
		dual.Mul(x[2], dual.Cos(x[3])),
		dual.Mul(x[2], dual.Sin(x[3])),
		u[0],
		u[1],
	}
}

// Jacobians returns the hand-derived continuous-time Jacobians
//
//	df/dx = | 0 0 cos(th) -v*sin(th) |    df/du = | 0 0 |
//	        | 0 0 sin(th)  v*cos(th) |            | 0 0 |
//	        | 0 0    0         0     |            | 1 0 |
//	        | 0 0    0         0     |            | 0 1 |
func (m *AnalyticUnicycle) Jacobians(x dynamo.State, u dynamo.Control) (A, B *mat.Dense) {
	v, theta := x[2], x[3]
	sin, cos := math.Sin(theta), math.Cos(theta)

	A = mat.NewDense(4, 4, []float64{
		0, 0, cos, -v * sin,
		0, 0, sin, v * cos,
		0, 0, 0, 0,
		0, 0, 0, 0,
	})
	B = mat.NewDense(4, 2, []float64{
		0, 0,
		0, 0,
		1, 0,
		0, 1,
	})
	return A, B
}

func (m *AnalyticUnicycle) String() string { return m.Describe("AnalyticUnicycle") }
