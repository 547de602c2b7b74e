// Package dynamo provides the dynamics primitives consumed by a
// decentralized trajectory-optimization solver.
//
// The package defines the contract every agent model satisfies and the
// shared machinery built on top of it:
//
//   - [State], [Control]: dense vectors over an agent's state/control space
//   - [Model]: continuous-time dynamics contract (dx/dt = f(x, u))
//   - [Step]: zero-order-hold Euler discretization, the one integration
//     scheme used everywhere
//   - [Linearize]: discrete-time Jacobians coupled to [Step] by construction
//   - [MultiModel]: joint block-decoupled dynamics over a roster of agents
//
// # Discretization
//
// Step advances x by f(x, u)*dt and Linearize returns A = I + dt*Ac,
// B = dt*Bc. The two are deliberately tied to the same explicit-Euler
// relation: a solver's local quadratic model of the dynamics must match the
// forward simulation it is correcting.
//
// # Thread Safety
//
// All operations are pure. The only mutable state is the package id
// allocator, guarded by a mutex and resettable with [ResetIDs].
package dynamo
