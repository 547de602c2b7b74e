package dynamo

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/num/dual"
)

// CompositeID is the sentinel id carried by every composite, marking it as
// a joint model rather than a leaf agent.
const CompositeID = -1

// MultiModel presents a roster of independently-defined agent models as a
// single joint dynamical model. The joint state and control vectors are the
// concatenation of the submodel vectors in roster order, and the joint
// derivative is block-decoupled: no cross-agent terms exist by construction.
type MultiModel struct {
	Meta
	submodels []Model
	xDims     []int
	uDims     []int
	ids       []int
}

// NewMultiModel composes the given models. All submodels must share one
// timestep; mixed timesteps would break the shared discretization and are
// rejected.
func NewMultiModel(submodels []Model) (*MultiModel, error) {
	if len(submodels) == 0 {
		return nil, ErrNoSubmodels
	}

	dt := submodels[0].Dt()
	xDims := make([]int, len(submodels))
	uDims := make([]int, len(submodels))
	ids := make([]int, len(submodels))
	nx, nu := 0, 0
	for i, sub := range submodels {
		if sub.Dt() != dt {
			return nil, fmt.Errorf("%w: agent %d has dt=%g, roster uses %g", ErrTimestepMismatch, sub.ID(), sub.Dt(), dt)
		}
		xDims[i] = sub.StateDim()
		uDims[i] = sub.ControlDim()
		ids[i] = sub.ID()
		nx += xDims[i]
		nu += uDims[i]
	}

	return &MultiModel{
		Meta:      NewMeta(nx, nu, dt, CompositeID),
		submodels: submodels,
		xDims:     xDims,
		uDims:     uDims,
		ids:       ids,
	}, nil
}

// Submodels returns the roster in joint-vector order. The slice is shared;
// treat it as read-only.
func (m *MultiModel) Submodels() []Model { return m.submodels }

func (m *MultiModel) XDims() []int { return m.xDims }
func (m *MultiModel) UDims() []int { return m.uDims }
func (m *MultiModel) IDs() []int   { return m.ids }

// Derive evaluates every submodel on its own slice of the joint vectors and
// concatenates the results in roster order.
func (m *MultiModel) Derive(x State, u Control) (State, error) {
	xs, us, err := m.Partition(x, u)
	if err != nil {
		return nil, err
	}

	dx := make(State, 0, m.StateDim())
	for i, sub := range m.submodels {
		di, err := sub.Derive(xs[i], us[i])
		if err != nil {
			return nil, err
		}
		dx = append(dx, di...)
	}
	return dx, nil
}

// Partition splits the joint vectors into per-submodel slices. The returned
// slices alias the joint vectors, so concatenating them in order reproduces
// the inputs exactly.
func (m *MultiModel) Partition(x State, u Control) ([]State, []Control, error) {
	if err := m.CheckArgs(x, u); err != nil {
		return nil, nil, err
	}

	xs := make([]State, len(m.submodels))
	us := make([]Control, len(m.submodels))
	ox, ou := 0, 0
	for i := range m.submodels {
		xs[i] = x[ox : ox+m.xDims[i]]
		us[i] = u[ou : ou+m.uDims[i]]
		ox += m.xDims[i]
		ou += m.uDims[i]
	}
	return xs, us, nil
}

// Split decomposes the composite along an interaction graph: one composite
// per problem, holding exactly the submodels named by that problem's
// neighbor set, in this composite's roster order. Problems are visited in
// ascending key order. A neighbor id absent from the roster is an error;
// silently dropping agents would hand the solver a sub-problem that no
// longer matches its graph.
func (m *MultiModel) Split(g Graph) ([]*MultiModel, error) {
	index := make(map[int]int, len(m.ids))
	for i, id := range m.ids {
		index[id] = i
	}

	out := make([]*MultiModel, 0, len(g))
	for _, problem := range g.Problems() {
		members := make(map[int]bool, len(g[problem]))
		for _, id := range g[problem] {
			if _, ok := index[id]; !ok {
				return nil, fmt.Errorf("%w: problem %d references agent %d", ErrUnknownAgent, problem, id)
			}
			members[id] = true
		}

		roster := make([]Model, 0, len(members))
		for _, sub := range m.submodels {
			if members[sub.ID()] {
				roster = append(roster, sub)
			}
		}

		sub, err := NewMultiModel(roster)
		if err != nil {
			return nil, fmt.Errorf("problem %d: %w", problem, err)
		}
		out = append(out, sub)
	}
	return out, nil
}

// DeriveDual delegates dual evaluation to the submodels, slice by slice.
// Only meaningful when CanDual reports true; Linearize checks that first.
func (m *MultiModel) DeriveDual(x, u []dual.Number) []dual.Number {
	dx := make([]dual.Number, 0, m.StateDim())
	ox, ou := 0, 0
	for i, sub := range m.submodels {
		ds := sub.(DualSystem)
		di := ds.DeriveDual(x[ox:ox+m.xDims[i]], u[ou:ou+m.uDims[i]])
		dx = append(dx, di...)
		ox += m.xDims[i]
		ou += m.uDims[i]
	}
	return dx
}

// CanDual reports whether the whole roster supports dual-number evaluation.
func (m *MultiModel) CanDual() bool {
	for _, sub := range m.submodels {
		if !canDual(sub) {
			return false
		}
	}
	return true
}

func (m *MultiModel) String() string {
	parts := make([]string, len(m.submodels))
	for i, sub := range m.submodels {
		parts[i] = sub.String()
	}
	return fmt.Sprintf("MultiModel(\n\t%s\n)", strings.Join(parts, ",\n\t"))
}
