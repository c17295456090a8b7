// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/badicecream/environment"
	ts "github.com/samuelfneumann/badicecream/timestep"
	"github.com/samuelfneumann/badicecream/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// OneHot wraps an environment with discrete observations and returns
// each observation component as a one-hot vector over the values it
// can take. The encodings of all components are concatenated, and a
// bias unit is placed as the first feature. For example, if a
// two-component observation takes values in [0, 2], then the
// observation [2 0] becomes [1  0 0 1  1 0 0].
//
// OneHot itself implements the environment.Environment interface and
// is therefore itself an environment.
type OneHot struct {
	environment.Environment
	lower    []int
	offsets  []int
	features int
}

// NewOneHot creates and returns a new OneHot environment wrapping an
// existing environment. The wrapped environment is reset when wrapped.
func NewOneHot(env environment.Environment) (*OneHot, ts.TimeStep, error) {
	spec := env.ObservationSpec()
	if spec.Cardinality != environment.Discrete {
		return nil, ts.TimeStep{}, fmt.Errorf("newOneHot: observations must "+
			"be discrete, got %v", spec.Cardinality)
	}

	n := spec.Shape.Len()
	lower := make([]int, n)
	offsets := make([]int, n)
	features := 1
	for i := 0; i < n; i++ {
		lower[i] = int(spec.LowerBound.AtVec(i))
		offsets[i] = features
		features += spec.Categories(i)
	}

	o := &OneHot{env, lower, offsets, features}
	step, err := o.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newOneHot: could not reset: %w",
			err)
	}

	return o, step, nil
}

// Reset resets the environment to some starting state
func (o *OneHot) Reset() (ts.TimeStep, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return step, err
	}

	step.Observation = o.Encode(step.Observation)
	return step, nil
}

// Step takes one environmental step given action a and returns the next
// state as a timestep.TimeStep and a bool indicating whether or not the
// episode has ended
func (o *OneHot) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, last, err := o.Environment.Step(a)
	if err != nil {
		return step, last, err
	}

	step.Observation = o.Encode(step.Observation)
	return step, last, nil
}

// CurrentTimeStep returns the last timestep generated by the
// environment, with its observation one-hot encoded
func (o *OneHot) CurrentTimeStep() ts.TimeStep {
	step := o.Environment.CurrentTimeStep()
	step.Observation = o.Encode(step.Observation)

	return step
}

// Encode returns the one-hot encoding of an observation of the wrapped
// environment
func (o *OneHot) Encode(obs mat.Vector) *mat.VecDense {
	encoded := mat.NewVecDense(o.features, nil)
	encoded.SetVec(0, 1.0)

	for i, offset := range o.offsets {
		category := int(obs.AtVec(i)) - o.lower[i]
		encoded.SetVec(offset+category, 1.0)
	}
	return encoded
}

// ObservationSpec returns the observation specification of the
// environment
func (o *OneHot) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(o.features, nil)
	lowerBound := mat.NewVecDense(o.features, nil)
	upperBound := matutils.VecOnes(o.features)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// String returns a string representation of the OneHot environment
func (o *OneHot) String() string {
	return fmt.Sprintf("OneHot: %v", o.Environment)
}
