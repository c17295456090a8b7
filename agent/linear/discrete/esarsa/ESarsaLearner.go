package esarsa

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/badicecream/agent/linear/discrete/policy"
	"github.com/samuelfneumann/badicecream/timestep"
	"gonum.org/v1/gonum/mat"
)

// ESarsaLearner implements the update functionality for the Expected
// Sarsa algorithm. The expectation in the update target is taken with
// respect to an ε-greedy target policy sharing the learner's weights.
type ESarsaLearner struct {
	weights      *mat.Dense
	target       *policy.EGreedy
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	learningRate float64
}

// NewESarsaLearner creates a new ESarsaLearner struct
func NewESarsaLearner(target *policy.EGreedy,
	learningRate float64) (*ESarsaLearner, error) {
	if learningRate <= 0 {
		return nil, fmt.Errorf("newESarsaLearner: learning rate must be "+
			"positive, got %v", learningRate)
	}

	weights := target.Weights()[policy.WeightsKey]
	return &ESarsaLearner{
		weights:      weights,
		target:       target,
		learningRate: learningRate,
	}, nil
}

// ObserveFirst observes and records the first episodic timestep
func (e *ESarsaLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	e.step = timestep.TimeStep{}
	e.nextStep = t

	return nil
}

// Observe observes and records any timestep other than the first timestep
func (e *ESarsaLearner) Observe(action mat.Vector,
	nextStep timestep.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods cannot have "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	e.step = e.nextStep
	e.action = int(action.AtVec(0))
	e.nextStep = nextStep

	return nil
}

// Step updates the weights of the Agent's Learner and Policy
func (e *ESarsaLearner) Step() error {
	if e.step.Observation == nil {
		return fmt.Errorf("step: no transition has been observed")
	}

	// Terminal states have no value
	discount := e.nextStep.Discount
	if e.nextStep.Last() {
		discount = 0
	}

	// Calculate the expected action value in the next state under the
	// target policy
	actionValues := e.target.ActionValues(e.nextStep.Observation)
	probabilities := e.target.Probabilities(actionValues)
	targetProbs := mat.NewVecDense(len(probabilities), probabilities)
	expectedQ := mat.Dot(targetProbs, actionValues)
	target := e.nextStep.Reward + discount*expectedQ

	// Find the current estimate of the taken action
	weights := e.weights.RowView(e.action)
	state := e.step.Observation
	currentEstimate := mat.Dot(weights, state)

	// Construct the scaling factor of the gradient
	scale := e.learningRate * (target - currentEstimate)

	// Perform gradient descent: ∇weights = scale * state
	newWeights := mat.NewVecDense(weights.Len(), nil)
	newWeights.AddScaledVec(weights, scale, state)
	e.weights.SetRow(e.action, newWeights.RawVector().Data)

	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (e *ESarsaLearner) EndEpisode() {}
