package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestStep_MatchesEulerRelation(t *testing.T) {
	m := newSpiral(0.05, 3)
	x := State{0.4, -1.2}
	u := Control{0.7}

	next, err := Step(m, x, u)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	dx, _ := m.Derive(x, u)
	for i := range x {
		want := x[i] + 0.05*dx[i]
		if math.Abs(next[i]-want) > 1e-15 {
			t.Errorf("next[%d] = %v, want %v", i, next[i], want)
		}
	}
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	m := newSpiral(0.1, 4)
	x := State{1.0, 2.0}

	if _, err := Step(m, x, Control{0}); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if x[0] != 1.0 || x[1] != 2.0 {
		t.Errorf("input state mutated: %v", x)
	}
}

func TestStep_DimensionMismatch(t *testing.T) {
	m := newSpiral(0.1, 5)

	tests := []struct {
		name string
		x    State
		u    Control
	}{
		{"short state", State{1}, Control{0}},
		{"long state", State{1, 2, 3}, Control{0}},
		{"short control", State{1, 2}, Control{}},
		{"long control", State{1, 2}, Control{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Step(m, tt.x, tt.u); !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("expected ErrDimensionMismatch, got %v", err)
			}
		})
	}
}

func TestStep_NonFinitePropagates(t *testing.T) {
	m := newNaNSys(0.1)

	_, err := Step(m, State{0, 0}, Control{0})
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
}

func TestMeta_Describe(t *testing.T) {
	m := NewMeta(4, 2, 0.1, 7)
	want := "Unicycle(n_x: 4, n_u: 2, id: 7)"
	if got := m.Describe("Unicycle"); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
