// Package models provides the agent dynamics available to a scenario.
//
// Each model implements the [dynamo.Model] interface, defining only the
// continuous derivative of its own state; integration and linearization are
// shared machinery in dynamo:
//
//   - [DoubleIntegrator]: planar point mass, acceleration-controlled
//   - [Car]: kinematic car, velocity- and turn-rate-controlled
//   - [Unicycle]: acceleration- and turn-rate-controlled
//   - [AnalyticUnicycle]: unicycle with closed-form Jacobians
//   - [Bike]: kinematic bicycle with steering-angle state
//
// All models also implement [dynamo.DualSystem] so the default
// linearization path differentiates them exactly.
package models
