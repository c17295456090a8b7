package qlearning

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/badicecream/timestep"
	"gonum.org/v1/gonum/mat"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	weights      *mat.Dense
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	learningRate float64
}

// NewQLearner creates a new QLearner struct
//
// weights are the weights of the policy to learn
func NewQLearner(weights *mat.Dense, learningRate float64) (*QLearner, error) {
	if learningRate <= 0 {
		return nil, fmt.Errorf("newQLearner: learning rate must be "+
			"positive, got %v", learningRate)
	}
	return &QLearner{weights: weights, learningRate: learningRate}, nil
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t

	return nil
}

// Observe observes and records any timestep other than the first timestep
func (q *QLearner) Observe(action mat.Vector, nextStep timestep.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods cannot have "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	q.step = q.nextStep
	q.action = int(action.AtVec(0))
	q.nextStep = nextStep

	return nil
}

// Step updates the weights of the Agent's Learner and Policy
func (q *QLearner) Step() error {
	if q.step.Observation == nil {
		return fmt.Errorf("step: no transition has been observed")
	}
	numActions, _ := q.weights.Dims()

	// Terminal states have no value
	discount := q.nextStep.Discount
	if q.nextStep.Last() {
		discount = 0
	}

	// Calculate the max action value in the next state
	actionValues := mat.NewVecDense(numActions, nil)
	actionValues.MulVec(q.weights, q.nextStep.Observation)
	target := q.nextStep.Reward + discount*mat.Max(actionValues)

	// Find the current estimate of the taken action
	weights := q.weights.RowView(q.action)
	state := q.step.Observation
	currentEstimate := mat.Dot(weights, state)

	// Construct the scaling factor of the gradient
	scale := q.learningRate * (target - currentEstimate)

	// Perform gradient descent: ∇weights = scale * state
	newWeights := mat.NewVecDense(weights.Len(), nil)
	newWeights.AddScaledVec(weights, scale, state)
	q.weights.SetRow(q.action, newWeights.RawVector().Data)

	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {}
