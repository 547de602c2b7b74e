package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Reference linearizers. Not part of the model contract; retained to
// cross-check the differentiation paths and as a fallback when a model
// supports neither dual numbers nor closed-form Jacobians.

// LinearizeForwardDifference estimates the continuous-time Jacobians by
// forward differences with a sqrt(machine-epsilon) perturbation per input
// dimension.
func LinearizeForwardDifference(m Model, x State, u Control) (A, B *mat.Dense, err error) {
	if err := checkDims(m, x, u); err != nil {
		return nil, nil, err
	}

	step := math.Sqrt(machineEps)
	nx := m.StateDim()
	nu := m.ControlDim()

	A = mat.NewDense(nx, nx, nil)
	fd.Jacobian(A, func(y, xs []float64) {
		evalInto(m, State(xs), u, y)
	}, x, &fd.JacobianSettings{Formula: fd.Forward, Step: step})

	B = mat.NewDense(nx, nu, nil)
	fd.Jacobian(B, func(y, us []float64) {
		evalInto(m, x, Control(us), y)
	}, u, &fd.JacobianSettings{Formula: fd.Forward, Step: step})

	if !isFinite(A) || !isFinite(B) {
		return nil, nil, fmt.Errorf("%w: forward-difference jacobian of %s", ErrNonFinite, m)
	}
	return A, B, nil
}

const machineEps = 0x1p-52

// LinearizeBlocks linearizes each submodel on its own slice and assembles
// the results into block-diagonal joint matrices. It is the reference for
// what linearizing the composite directly must produce: off-block entries
// are identically zero because no agent's derivative reads another's state.
func LinearizeBlocks(m *MultiModel, x State, u Control) (A, B *mat.Dense, err error) {
	xs, us, err := m.Partition(x, u)
	if err != nil {
		return nil, nil, err
	}

	A = mat.NewDense(m.StateDim(), m.StateDim(), nil)
	B = mat.NewDense(m.StateDim(), m.ControlDim(), nil)

	ox, ou := 0, 0
	for i, sub := range m.Submodels() {
		Ai, Bi, err := Linearize(sub, xs[i], us[i])
		if err != nil {
			return nil, nil, err
		}
		ri, ci := Ai.Dims()
		for r := 0; r < ri; r++ {
			for c := 0; c < ci; c++ {
				A.Set(ox+r, ox+c, Ai.At(r, c))
			}
		}
		ri, ci = Bi.Dims()
		for r := 0; r < ri; r++ {
			for c := 0; c < ci; c++ {
				B.Set(ox+r, ou+c, Bi.At(r, c))
			}
		}
		ox += sub.StateDim()
		ou += sub.ControlDim()
	}
	return A, B, nil
}
