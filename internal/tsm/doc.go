// Package tsm integrates ordinary differential equations with the Taylor
// series method.
//
// Each step expands every state variable as a Taylor polynomial around the
// current point and sums it at the step size:
//
//   - [Model]: system written one Taylor coefficient at a time
//   - [Stepper]: state machine performing one step per [Stepper.Next]
//   - [Observer]: receives the initial state and every completed step
//   - [Run]: drives a Stepper to completion and records the trajectory
//
// Coefficient k+1 of a state jet is coefficient k of its derivative divided
// by k+1, so the model is called for k = 0..Order-1 and every state
// variable advances in lock-step.
//
// # Example
//
//	m := models.NewLorenz()
//	cfg := tsm.Config{Order: 20, Step: h, Steps: 1000, Prec: 128}
//	res, err := tsm.Run(ctx, m, m.DefaultState(128), cfg)
//
// # Errors
//
// A failed recurrence precondition or a non-finite sum aborts the run with
// a [SimulationError]. Steppers are not safe for concurrent use.
package tsm
