package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
)

// Jacobians is implemented by models carrying closed-form continuous-time
// Jacobian functions, typically derived offline by symbolic differentiation.
// When present it replaces differentiation at call time.
type Jacobians interface {
	Jacobians(x State, u Control) (A, B *mat.Dense)
}

// DualSystem is implemented by models whose derivative can be evaluated
// over dual numbers, enabling exact forward-mode differentiation. The dual
// evaluation must compute the same function as Derive.
type DualSystem interface {
	DeriveDual(x, u []dual.Number) []dual.Number
}

// LinearizeContinuous computes the continuous-time Jacobians Ac = df/dx and
// Bc = df/du at the given point. Closed-form Jacobians win over forward-mode
// differentiation, which wins over central finite differences.
func LinearizeContinuous(m Model, x State, u Control) (A, B *mat.Dense, err error) {
	if err := checkDims(m, x, u); err != nil {
		return nil, nil, err
	}

	switch {
	case hasJacobians(m):
		A, B = m.(Jacobians).Jacobians(x, u)
	case canDual(m):
		A, B = dualJacobians(m.(DualSystem), m.StateDim(), x, u)
	default:
		A, B = diffJacobians(m, x, u)
	}

	if !isFinite(A) || !isFinite(B) {
		return nil, nil, fmt.Errorf("%w: jacobian of %s at x=%v", ErrNonFinite, m, x)
	}
	return A, B, nil
}

// Linearize computes the discrete-time Jacobians matching Step's zero-order
// hold: A = I + dt*Ac, B = dt*Bc. This is the form the solver consumes.
func Linearize(m Model, x State, u Control) (A, B *mat.Dense, err error) {
	Ac, Bc, err := LinearizeContinuous(m, x, u)
	if err != nil {
		return nil, nil, err
	}
	return discretize(m.Dt(), Ac, Bc)
}

func discretize(dt float64, Ac, Bc *mat.Dense) (A, B *mat.Dense, err error) {
	nx, _ := Ac.Dims()
	A = mat.NewDense(nx, nx, nil)
	A.Scale(dt, Ac)
	for i := 0; i < nx; i++ {
		A.Set(i, i, A.At(i, i)+1)
	}
	_, nu := Bc.Dims()
	B = mat.NewDense(nx, nu, nil)
	B.Scale(dt, Bc)
	return A, B, nil
}

func hasJacobians(m Model) bool {
	_, ok := m.(Jacobians)
	return ok
}

// canDual reports whether m supports dual-number evaluation. Composites
// implement CanDual to answer for their whole roster.
func canDual(m Model) bool {
	if c, ok := m.(interface{ CanDual() bool }); ok {
		return c.CanDual()
	}
	_, ok := m.(DualSystem)
	return ok
}

// dualJacobians seeds one dual perturbation per input dimension and reads
// the partials off the epsilon parts of the output.
func dualJacobians(sys DualSystem, nx int, x State, u Control) (A, B *mat.Dense) {
	xd := make([]dual.Number, len(x))
	ud := make([]dual.Number, len(u))
	for i, v := range x {
		xd[i] = dual.Number{Real: v}
	}
	for i, v := range u {
		ud[i] = dual.Number{Real: v}
	}

	A = mat.NewDense(nx, len(x), nil)
	for j := range xd {
		xd[j].Emag = 1
		out := sys.DeriveDual(xd, ud)
		for i := range out {
			A.Set(i, j, out[i].Emag)
		}
		xd[j].Emag = 0
	}

	B = mat.NewDense(nx, len(u), nil)
	for j := range ud {
		ud[j].Emag = 1
		out := sys.DeriveDual(xd, ud)
		for i := range out {
			B.Set(i, j, out[i].Emag)
		}
		ud[j].Emag = 0
	}
	return A, B
}

// diffJacobians is the numerical fallback for models without dual support.
func diffJacobians(m Model, x State, u Control) (A, B *mat.Dense) {
	nx := m.StateDim()
	nu := m.ControlDim()

	A = mat.NewDense(nx, nx, nil)
	fd.Jacobian(A, func(y, xs []float64) {
		evalInto(m, State(xs), u, y)
	}, x, &fd.JacobianSettings{Formula: fd.Central})

	B = mat.NewDense(nx, nu, nil)
	fd.Jacobian(B, func(y, us []float64) {
		evalInto(m, x, Control(us), y)
	}, u, &fd.JacobianSettings{Formula: fd.Central})
	return A, B
}

// evalInto adapts Derive to the fd callback shape. Dimensions are validated
// before differentiation starts, so an error here can only mean a
// non-finite evaluation; NaNs are left to the caller's finiteness check.
func evalInto(m Model, x State, u Control, y []float64) {
	dx, err := m.Derive(x, u)
	if err != nil {
		for i := range y {
			y[i] = math.NaN()
		}
		return
	}
	copy(y, dx)
}

func checkDims(m Model, x State, u Control) error {
	if len(x) != m.StateDim() {
		return fmt.Errorf("%w: state has %d entries, %s wants %d", ErrDimensionMismatch, len(x), m, m.StateDim())
	}
	if len(u) != m.ControlDim() {
		return fmt.Errorf("%w: control has %d entries, %s wants %d", ErrDimensionMismatch, len(u), m, m.ControlDim())
	}
	return nil
}

func isFinite(m *mat.Dense) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
