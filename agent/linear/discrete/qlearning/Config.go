package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/utils/matutils/initializers/weights"
)

func init() {
	agent.Register(agent.EGreedyQLearningLinear, Config{})
}

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon      float64 `hcl:"epsilon"` // epislon for behaviour policy
	LearningRate float64 `hcl:"learning_rate"`
}

// CreateAgent creates the agent from the Config. Agent weights are
// always initialized to zero using this function. To initialize from
// some other distribution, use the agent's constructor manually.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {

	return New(env, c, weights.NewZero(), seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v",
			c.LearningRate)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningLinear
}
