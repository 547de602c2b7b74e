package dynamo

import "errors"

// Domain errors for dynamics operations.
var (
	// ErrDimensionMismatch indicates a state or control vector whose length
	// does not match the model's declared dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")

	// ErrNonFinite indicates a derivative or Jacobian containing NaN or Inf.
	// It signals a degenerate state the optimizer must handle; values are
	// never clamped.
	ErrNonFinite = errors.New("dynamo: non-finite result (NaN or Inf)")

	// ErrUnknownAgent indicates an interaction-graph entry referencing an
	// agent id not present in the composite being split.
	ErrUnknownAgent = errors.New("dynamo: unknown agent id")

	// ErrTimestepMismatch indicates submodels with differing timesteps
	// combined into one composite.
	ErrTimestepMismatch = errors.New("dynamo: submodel timestep mismatch")

	// ErrNoSubmodels indicates an attempt to build a composite from an
	// empty roster.
	ErrNoSubmodels = errors.New("dynamo: composite requires at least one submodel")
)
