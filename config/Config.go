// Package config loads training experiment configurations from HCL or
// JSON files. A configuration looks like:
//
//	seed  = 1
//	steps = 800000
//
//	environment {
//	  rows      = 12
//	  cols      = 16
//	  max_steps = 40
//	  discount  = 0.99
//	}
//
//	agent "EGreedyQLearning-Linear" {
//	  epsilon       = 0.1
//	  learning_rate = 0.001
//	}
//
//	output {
//	  dir              = "results"
//	  checkpoint_every = 10000
//	  gif              = "game.gif"
//	  max_frames       = 1000
//	}
//
// Omitted top-level attributes and omitted environment and output
// blocks and attributes take their default values. An omitted agent
// block selects ε-greedy Q-learning with default hyperparameters, but a
// given agent block must set every hyperparameter of its agent type.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/game"

	"github.com/samuelfneumann/badicecream/agent/linear/discrete/qlearning"

	// Register the remaining agents that can be configured
	_ "github.com/samuelfneumann/badicecream/agent/linear/discrete/esarsa"
)

const (
	DefaultSteps           int     = 800_000
	DefaultDiscount        float64 = 0.99
	DefaultEpsilon         float64 = 0.1
	DefaultLearningRate    float64 = 0.001
	DefaultCheckpointEvery int     = 10_000
	DefaultDir             string  = "results"
	DefaultGIF             string  = "game.gif"
	DefaultMaxFrames       int     = 1000
)

// Experiment is a full training configuration
type Experiment struct {
	Seed        uint64       `hcl:"seed,optional"`
	Steps       int          `hcl:"steps,optional"`
	Environment *Environment `hcl:"environment,block"`
	Agent       *Agent       `hcl:"agent,block"`
	Output      *Output      `hcl:"output,block"`
}

// Environment configures the game board. Zero values take the
// defaults of game.DefaultConfig.
type Environment struct {
	Rows       int     `hcl:"rows,optional"`
	Cols       int     `hcl:"cols,optional"`
	MaxSteps   int     `hcl:"max_steps,optional"`
	MinEnemies *int    `hcl:"min_enemies,optional"`
	MaxEnemies *int    `hcl:"max_enemies,optional"`
	MinFruit   *int    `hcl:"min_fruit,optional"`
	MaxFruit   *int    `hcl:"max_fruit,optional"`
	Discount   float64 `hcl:"discount,optional"`
}

// Agent selects an agent type by its label and holds its
// hyperparameters. The body is decoded into the agent.Config
// registered with the label.
type Agent struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`

	config agent.Config
}

// Output configures where experiment data is written
type Output struct {
	Dir             string `hcl:"dir,optional"`
	CheckpointEvery int    `hcl:"checkpoint_every,optional"`
	GIF             string `hcl:"gif,optional"`

	// MaxFrames caps the number of steps of the recorded greedy
	// episode. Placing a block never times out an episode, so a
	// policy that keeps placing blocks would otherwise never finish.
	MaxFrames int `hcl:"max_frames,optional"`
}

// Default returns the configuration used when no file is given: an
// ε-greedy Q-learning agent trained on the classic board
func Default() Experiment {
	return Experiment{
		Steps:       DefaultSteps,
		Environment: &Environment{},
		Agent: &Agent{
			Type: string(agent.EGreedyQLearningLinear),
			config: &qlearning.Config{
				Epsilon:      DefaultEpsilon,
				LearningRate: DefaultLearningRate,
			},
		},
		Output: &Output{},
	}.withDefaults()
}

// Load reads an experiment configuration. Files ending in .json are
// parsed as JSON, all others as HCL.
func Load(filename string) (Experiment, error) {
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSONFile(filename)
	} else {
		file, diags = parser.ParseHCLFile(filename)
	}
	if diags.HasErrors() {
		return Experiment{}, fmt.Errorf("load: failed to parse %s: %s",
			filename, diags.Error())
	}

	var e Experiment
	if diags := gohcl.DecodeBody(file.Body, nil, &e); diags.HasErrors() {
		return Experiment{}, fmt.Errorf("load: failed to decode %s: %s",
			filename, diags.Error())
	}

	if e.Agent == nil {
		e.Agent = Default().Agent
	} else if err := e.Agent.decode(); err != nil {
		return Experiment{}, fmt.Errorf("load: %s: %w", filename, err)
	}

	e = e.withDefaults()
	if err := e.Validate(); err != nil {
		return Experiment{}, fmt.Errorf("load: %s: %w", filename, err)
	}
	return e, nil
}

// decode decodes the agent body into the Config registered with the
// agent's type
func (a *Agent) decode() error {
	c, err := agent.NewConfig(agent.Type(a.Type))
	if err != nil {
		return err
	}

	if diags := gohcl.DecodeBody(a.Body, nil, c); diags.HasErrors() {
		return fmt.Errorf("agent %q: %s", a.Type, diags.Error())
	}

	a.config = c
	return nil
}

// Config returns the agent configuration
func (a *Agent) Config() agent.Config {
	return a.config
}

func (e Experiment) withDefaults() Experiment {
	if e.Steps == 0 {
		e.Steps = DefaultSteps
	}
	if e.Environment == nil {
		e.Environment = &Environment{}
	}
	if e.Environment.Discount == 0 {
		e.Environment.Discount = DefaultDiscount
	}
	if e.Output == nil {
		e.Output = &Output{}
	}
	if e.Output.Dir == "" {
		e.Output.Dir = DefaultDir
	}
	if e.Output.CheckpointEvery == 0 {
		e.Output.CheckpointEvery = DefaultCheckpointEvery
	}
	if e.Output.GIF == "" {
		e.Output.GIF = DefaultGIF
	}
	if e.Output.MaxFrames == 0 {
		e.Output.MaxFrames = DefaultMaxFrames
	}
	return e
}

// Game returns the game configuration described by the environment
// block
func (e Experiment) Game() game.Config {
	c := game.DefaultConfig()
	env := e.Environment
	if env == nil {
		return c
	}

	if env.Rows != 0 {
		c.Rows = env.Rows
	}
	if env.Cols != 0 {
		c.Cols = env.Cols
	}
	if env.MaxSteps != 0 {
		c.MaxSteps = env.MaxSteps
	}
	setIfPresent(&c.Enemies.Min, env.MinEnemies)
	setIfPresent(&c.Enemies.Max, env.MaxEnemies)
	setIfPresent(&c.Fruit.Min, env.MinFruit)
	setIfPresent(&c.Fruit.Max, env.MaxFruit)

	return c
}

// Validate returns an error if the experiment cannot be run
func (e Experiment) Validate() error {
	if e.Steps < 1 {
		return fmt.Errorf("validate: steps must be positive, got %d", e.Steps)
	}
	if d := e.Environment.Discount; d < 0 || d > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v", d)
	}
	if err := e.Game().Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if e.Output.CheckpointEvery < 1 {
		return fmt.Errorf("validate: checkpoint_every must be positive, "+
			"got %d", e.Output.CheckpointEvery)
	}
	if e.Output.MaxFrames < 1 {
		return fmt.Errorf("validate: max_frames must be positive, got %d",
			e.Output.MaxFrames)
	}
	if err := e.Agent.config.Validate(); err != nil {
		return fmt.Errorf("validate: agent %q: %w", e.Agent.Type, err)
	}
	return nil
}

func setIfPresent(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
