// Package qlearning implements the Q-Learning algorithm.
//
// The Q-Learning algorithm is a special case of the Expected Sarsa
// algorithm. This package implements the same functionality as the
// esarsa package, but with some minor performance improvements due to
// the nature of the Q-Learning target policy being known before-hand.
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/agent/linear/discrete/policy"
	"github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/utils/matutils/initializers/weights"
)

// QLearning implements the online Q-Learning algorithm. Actions selected by
// this algorithm will always be enumerated as (0, 1, 2, ... N) where
// N is the maximum possible action.
type QLearning struct {
	agent.Learner
	agent.Policy
	behaviour *policy.EGreedy
}

// New creates a new QLearning struct
func New(env environment.Environment, c Config,
	init weights.Initializer, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("qlearning: %w", err)
	}

	behaviour, err := policy.NewEGreedy(c.Epsilon, seed, env)
	if err != nil {
		return nil, fmt.Errorf("qlearning: invalid behaviour policy: %w", err)
	}

	w := behaviour.Weights()[policy.WeightsKey]
	init.Initialize(w)

	learner, err := NewQLearner(w, c.LearningRate)
	if err != nil {
		return nil, fmt.Errorf("qlearning: cannot create learner: %w", err)
	}

	return &QLearning{learner, behaviour, behaviour}, nil
}

// Save saves the agent's weights to a file
func (q *QLearning) Save(filename string) error {
	return q.behaviour.Save(filename)
}

// Load loads the agent's weights from a file written by Save
func (q *QLearning) Load(filename string) error {
	return q.behaviour.Load(filename)
}

// String returns the behaviour policy with its learned weights
func (q *QLearning) String() string {
	return "QLearning " + q.behaviour.String()
}
