// Package policy implements policies using linear function
// approximation
package policy

import (
	"encoding/gob"
	"fmt"
	"os"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/timestep"
	"github.com/samuelfneumann/badicecream/utils/floatutils"
	"github.com/samuelfneumann/badicecream/utils/matutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// Keys for weights map: map[string]*mat.Dense
	WeightsKey string = "weights"
)

// EGreedy implements an ε-greedy policy using linear function
// approximation. Ties between greedy actions are broken uniformly at
// random. In evaluation mode the policy is greedy.
type EGreedy struct {
	weights *mat.Dense
	epsilon float64
	eval    bool
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy, where e=epislon is the
// probability with which a random action is selected. Actions must be
// 1-dimensional, discrete, and enumerated from 0.
func NewEGreedy(e float64, seed uint64,
	env environment.Environment) (*EGreedy, error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"got %v", e)
	}

	actionSpec := env.ActionSpec()
	if actionSpec.Shape.Len() != 1 {
		return nil, fmt.Errorf("newEGreedy: actions must be 1-dimensional")
	}
	if actionSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("newEGreedy: actions must be discrete")
	}
	if actionSpec.LowerBound.AtVec(0) != 0.0 {
		return nil, fmt.Errorf("newEGreedy: actions must be enumerated " +
			"starting from 0")
	}

	actions := actionSpec.Categories(0)
	features := env.ObservationSpec().Shape.Len()

	// Create the weight matrix: rows = actions, cols = features
	weights := mat.NewDense(actions, features, nil)

	return &EGreedy{
		weights: weights,
		epsilon: e,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// NewGreedy creates a new Greedy policy
func NewGreedy(seed uint64, env environment.Environment) (*EGreedy, error) {
	return NewEGreedy(0.0, seed, env)
}

// Weights gets and returns the weights of the EGreedy policy as a
// string description -> weights
func (p *EGreedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = p.weights

	return weights
}

// SetWeights sets the weight pointers to point to a new set of weights.
// The SetWeights function can take the output of a call to Weights()
// on another EGreedy Policy directly
func (p *EGreedy) SetWeights(weights map[string]*mat.Dense) error {
	newWeights, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setWeights: no weights named \"%v\"", WeightsKey)
	}

	p.weights = newWeights
	return nil
}

// Epsilon returns the probability of selecting a random action in
// training mode
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// ActionValues returns the value of each action in the state obs
func (p *EGreedy) ActionValues(obs mat.Vector) *mat.VecDense {
	numActions, _ := p.weights.Dims()
	actionValues := mat.NewVecDense(numActions, nil)
	actionValues.MulVec(p.weights, obs)

	return actionValues
}

// Probabilities returns the probability of selecting each action given
// the action values. Greedy actions share the probability 1 - ε.
func (p *EGreedy) Probabilities(actionValues *mat.VecDense) []float64 {
	epsilon := p.epsilon
	if p.eval {
		epsilon = 0
	}

	numActions := actionValues.Len()
	probabilities := make([]float64, numActions)
	for i := range probabilities {
		probabilities[i] = epsilon / float64(numActions)
	}

	_, greedy := floatutils.MaxSlice(actionValues.RawVector().Data)
	for _, a := range greedy {
		probabilities[a] += (1.0 - epsilon) / float64(len(greedy))
	}
	return probabilities
}

// SelectAction selects and action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	probabilities := p.Probabilities(p.ActionValues(t.Observation))

	// Construct a categorical distribution over actions using action
	// probabilities
	dist := distuv.NewCategorical(probabilities, p.rng)

	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// Eval sets the policy to evaluation mode
func (p *EGreedy) Eval() {
	p.eval = true
}

// Train sets the policy to training mode
func (p *EGreedy) Train() {
	p.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool {
	return p.eval
}

// String returns the policy's epsilon and its weights, one row per
// action
func (p *EGreedy) String() string {
	return fmt.Sprintf("EGreedy(ε=%v, eval=%v)\n%v", p.epsilon, p.eval,
		matutils.Format(p.weights))
}

// Save saves the policy weights to a file using gob encoding
func (p *EGreedy) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(p.weights); err != nil {
		return fmt.Errorf("save: could not encode weights: %w", err)
	}
	return file.Close()
}

// Load loads policy weights previously written by Save. The weights
// are copied in place so that learners sharing them see the change.
func (p *EGreedy) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open file: %w", err)
	}
	defer file.Close()

	var weights mat.Dense
	if err := gob.NewDecoder(file).Decode(&weights); err != nil {
		return fmt.Errorf("load: could not decode weights: %w", err)
	}

	r, c := p.weights.Dims()
	wr, wc := weights.Dims()
	if r != wr || c != wc {
		return fmt.Errorf("load: expected weights of shape (%d, %d), got "+
			"(%d, %d)", r, c, wr, wc)
	}

	p.weights.Copy(&weights)
	return nil
}
