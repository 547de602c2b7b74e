package dynamo

import "fmt"

// Model is the contract every dynamical model satisfies, leaf agent and
// composite alike.
type Model interface {
	fmt.Stringer

	// Derive evaluates the continuous-time derivative dx/dt = f(x, u).
	// It is pure and stateless, and fails with ErrDimensionMismatch when
	// the inputs do not match the declared dimensions.
	Derive(x State, u Control) (State, error)

	StateDim() int
	ControlDim() int
	Dt() float64
	ID() int
}

// Meta carries the attributes shared by every model: dimensions, timestep
// and identity. Embed it and implement Derive to satisfy Model.
type Meta struct {
	nx, nu int
	dt     float64
	id     int
}

// NewMeta builds model metadata. When no explicit id is given one is drawn
// from the package allocator.
func NewMeta(nx, nu int, dt float64, id ...int) Meta {
	m := Meta{nx: nx, nu: nu, dt: dt}
	if len(id) > 0 {
		m.id = id[0]
	} else {
		m.id = NextID()
	}
	return m
}

func (m Meta) StateDim() int   { return m.nx }
func (m Meta) ControlDim() int { return m.nu }
func (m Meta) Dt() float64     { return m.dt }
func (m Meta) ID() int         { return m.id }

// Describe renders the conventional model description used for logging.
func (m Meta) Describe(name string) string {
	return fmt.Sprintf("%s(n_x: %d, n_u: %d, id: %d)", name, m.nx, m.nu, m.id)
}

// CheckArgs validates input vector lengths against the declared dimensions.
func (m Meta) CheckArgs(x State, u Control) error {
	if len(x) != m.nx {
		return fmt.Errorf("%w: state has %d entries, model wants %d", ErrDimensionMismatch, len(x), m.nx)
	}
	if len(u) != m.nu {
		return fmt.Errorf("%w: control has %d entries, model wants %d", ErrDimensionMismatch, len(u), m.nu)
	}
	return nil
}

// Step advances the state one timestep with a zero-order hold on the
// control: x_next = x + f(x, u)*dt. Every model shares this discretization;
// Linearize is tied to the same relation.
func Step(m Model, x State, u Control) (State, error) {
	dx, err := m.Derive(x, u)
	if err != nil {
		return nil, err
	}
	if !dx.IsValid() {
		return nil, fmt.Errorf("%w: derivative of %s at x=%v", ErrNonFinite, m, x)
	}
	next := make(State, len(x))
	dt := m.Dt()
	for i := range x {
		next[i] = x[i] + dt*dx[i]
	}
	return next, nil
}
