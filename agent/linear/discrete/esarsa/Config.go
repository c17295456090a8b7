package esarsa

import (
	"fmt"

	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/utils/matutils/initializers/weights"
)

func init() {
	agent.Register(agent.EGreedyESarsaLinear, Config{})
}

// Config represents a configuration for the ESarsa agent.
type Config struct {
	BehaviourE   float64 `hcl:"behaviour_epsilon"` // epislon for behaviour policy
	TargetE      float64 `hcl:"target_epsilon"`    // epsilon for target policy
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
	_, ok := a.(*ESarsa)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.BehaviourE < 0 || c.BehaviourE > 1 {
		return fmt.Errorf("behaviour epsilon must be in [0, 1], got %v",
			c.BehaviourE)
	}
	if c.TargetE < 0 || c.TargetE > 1 {
		return fmt.Errorf("target epsilon must be in [0, 1], got %v",
			c.TargetE)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v",
			c.LearningRate)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyESarsaLinear
}
