// Package icecream exposes the Bad Ice Cream game as an
// environment.Environment. Observations are the game board flattened
// in row-major order, with each element holding a game.Cell value.
package icecream

import (
	"fmt"

	env "github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/game"
	ts "github.com/samuelfneumann/badicecream/timestep"
	"github.com/samuelfneumann/badicecream/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

const DefaultDiscount float64 = 0.99

// IceCream implements the Bad Ice Cream environment
type IceCream struct {
	game *game.Game

	discount    float64
	currentStep ts.TimeStep
}

// New creates a new Bad Ice Cream environment and returns its first
// timestep
func New(c game.Config, discount float64, seed uint64) (*IceCream,
	ts.TimeStep, error) {
	g, err := game.New(c, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: could not create game: %w",
			err)
	}

	iceCream := Wrap(g, discount)
	return iceCream, iceCream.CurrentTimeStep(), nil
}

// Wrap returns an environment driving an existing game. The current
// board of g is used as the first observation and is not reset.
func Wrap(g *game.Game, discount float64) *IceCream {
	s := g.Snapshot()
	step := ts.New(ts.First, 0, discount, observation(s.Grid), s.Steps)

	return &IceCream{game: g, discount: discount, currentStep: step}
}

// Game returns the underlying game
func (i *IceCream) Game() *game.Game {
	return i.game
}

// Reset resets the environment and returns the first timestep of a
// new episode
func (i *IceCream) Reset() (ts.TimeStep, error) {
	grid, _ := i.game.Reset()
	step := ts.New(ts.First, 0, i.discount, observation(grid), 0)

	i.currentStep = step
	return step, nil
}

// Step takes one environmental step given a 1-dimensional action
// holding a game.Action value
func (i *IceCream) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, true, fmt.Errorf("step: actions must be "+
			"1-dimensional, got %d dimensions", action.Len())
	}

	a := game.Action(int(action.AtVec(0)))
	result, err := i.game.Step(a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %w", err)
	}

	stepType := ts.Mid
	if result.Terminal {
		stepType = ts.Last
	}
	nextStep := ts.New(stepType, result.Reward, i.discount,
		observation(result.Grid), result.Info.Steps)

	if result.Terminal {
		if result.Info.Outcome == game.Timeout {
			nextStep.SetEnd(ts.Timeout)
		} else {
			nextStep.SetEnd(ts.TerminalStateReached)
		}
	}

	i.currentStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// CurrentTimeStep returns the last timestep generated by the
// environment
func (i *IceCream) CurrentTimeStep() ts.TimeStep {
	return i.currentStep
}

// ActionSpec returns the action specification of the environment
func (i *IceCream) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(game.MoveUp)})
	upperBound := mat.NewVecDense(1, []float64{float64(game.PlaceBlock)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound, env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (i *IceCream) ObservationSpec() env.Spec {
	c := i.game.Config()
	features := c.Rows * c.Cols

	shape := mat.NewVecDense(features, nil)
	lowerBound := mat.NewVecDense(features, nil)
	upperBound := mat.NewVecDense(features, nil)
	for j := 0; j < features; j++ {
		lowerBound.SetVec(j, float64(game.Empty))
		upperBound.SetVec(j, float64(game.Block))
	}

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// DiscountSpec returns the discount specification of the environment
func (i *IceCream) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{i.discount})

	return env.NewSpec(shape, env.Discount, lowerBound, lowerBound,
		env.Continuous)
}

// RewardSpec returns the reward specification of the environment. The
// upper bound also covers a running score of every fruit the board can
// hold.
func (i *IceCream) RewardSpec() env.Spec {
	r := i.game.Config().Rewards
	f := i.game.Config().Fruit

	lower := floatutils.Min(r.Enemy, r.Block, r.Timeout, r.Win, 0)
	upper := floatutils.Max(r.Enemy, r.Block, r.Timeout, r.Win,
		r.Fruit*float64(f.Max))

	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{lower})
	upperBound := mat.NewVecDense(1, []float64{upper})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

func (i *IceCream) String() string {
	return i.game.String()
}

func observation(g game.Grid) *mat.VecDense {
	flat := g.Flat()
	return mat.NewVecDense(len(flat), flat)
}
