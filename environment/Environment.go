// Package environment outlines the interfaces and specifications that
// environments must satisfy to be driven by agents and experiments
package environment

import (
	ts "github.com/samuelfneumann/badicecream/timestep"
	"gonum.org/v1/gonum/mat"
)

// Environment implements a simulated environment that an agent acts in
type Environment interface {
	Reset() (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep
	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Starter implements a distribution of starting states
type Starter interface {
	Start() *mat.VecDense
}
