// Package models provides the dynamical systems shipped with taylorsim.
//
// Each model implements [tsm.Model], writing coefficient k of its vector
// field from coefficients 0..k of the state jets:
//
//   - [Exponential]: dx/dt = ax, the accuracy reference
//   - [Lorenz], [Rossler], [Thomas], [Halvorsen]: chaotic flows
//   - [VanDerPol], [Duffing]: nonlinear oscillators
//   - [Pendulum], [DoubleWell]: conservative oscillators
//   - [Kepler]: planar two-body orbit
//
// Parameters are strings parsed at the working precision, so "8/3" is as
// exact as the run allows. Models that need sin, cos or powers of a state
// variable allocate scratch jets in Prepare.
//
// # Energy Conservation
//
// Conservative models implement [tsm.Hamiltonian]:
//
//	m := models.NewPendulum()
//	if h, ok := tsm.Model(m).(tsm.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package models
