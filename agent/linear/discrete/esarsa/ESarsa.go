// Package esarsa implements the Expected Sarsa algorithm
package esarsa

import (
	"fmt"

	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/agent/linear/discrete/policy"
	"github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/utils/matutils/initializers/weights"
)

// ESarsa implements the online Expected Sarsa algorithm. Actions selected by
// this algorithm will always be enumerated as (0, 1, 2, ... N) where
// N is the maximum possible action.
type ESarsa struct {
	agent.Learner
	agent.Policy // Behaviour
	Target       agent.Policy
	behaviour    *policy.EGreedy
}

// New creates a new ESarsa struct
func New(env environment.Environment, c Config,
	init weights.Initializer, seed uint64) (*ESarsa, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("esarsa: %w", err)
	}

	behaviour, err := policy.NewEGreedy(c.BehaviourE, seed, env)
	if err != nil {
		return nil, fmt.Errorf("esarsa: invalid behaviour policy: %w", err)
	}

	target, err := policy.NewEGreedy(c.TargetE, seed, env)
	if err != nil {
		return nil, fmt.Errorf("esarsa: invalid target policy: %w", err)
	}

	// Ensure both policies and learner reference the same weights
	weights := behaviour.Weights()
	if err := target.SetWeights(weights); err != nil {
		return nil, fmt.Errorf("esarsa: %w", err)
	}

	learner, err := NewESarsaLearner(target, c.LearningRate)
	if err != nil {
		return nil, fmt.Errorf("esarsa: cannot create learner: %w", err)
	}

	// Initialize weights
	for weight := range weights {
		init.Initialize(weights[weight])
	}

	return &ESarsa{learner, behaviour, target, behaviour}, nil
}

// Save saves the agent's weights to a file
func (e *ESarsa) Save(filename string) error {
	return e.behaviour.Save(filename)
}

// Load loads the agent's weights from a file written by Save
func (e *ESarsa) Load(filename string) error {
	return e.behaviour.Load(filename)
}

// String returns the behaviour policy with its learned weights
func (e *ESarsa) String() string {
	return "ESarsa " + e.behaviour.String()
}
