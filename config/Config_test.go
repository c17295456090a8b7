package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/agent/linear/discrete/esarsa"
	"github.com/samuelfneumann/badicecream/agent/linear/discrete/qlearning"
	"github.com/samuelfneumann/badicecream/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	e := Default()
	require.NoError(t, e.Validate())

	assert.Equal(t, DefaultSteps, e.Steps)
	assert.Equal(t, DefaultDiscount, e.Environment.Discount)
	assert.Equal(t, DefaultGIF, e.Output.GIF)
	assert.Equal(t, DefaultMaxFrames, e.Output.MaxFrames)
	assert.Equal(t, agent.EGreedyQLearningLinear, e.Agent.Config().Type())
	assert.Equal(t, game.DefaultConfig(), e.Game())
}

func TestLoadHCL(t *testing.T) {
	path := writeFile(t, "experiment.hcl", `
seed  = 7
steps = 500

environment {
  rows        = 4
  cols        = 5
  max_steps   = 20
  min_enemies = 0
  max_enemies = 1
  discount    = 0.9
}

agent "EGreedyESarsa-Linear" {
  behaviour_epsilon = 0.2
  target_epsilon    = 0.05
  learning_rate     = 0.01
}

output {
  dir              = "out"
  checkpoint_every = 100
}
`)

	e, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), e.Seed)
	assert.Equal(t, 500, e.Steps)
	assert.Equal(t, 0.9, e.Environment.Discount)
	assert.Equal(t, "out", e.Output.Dir)
	assert.Equal(t, 100, e.Output.CheckpointEvery)
	assert.Equal(t, DefaultGIF, e.Output.GIF)

	c := e.Game()
	assert.Equal(t, 4, c.Rows)
	assert.Equal(t, 5, c.Cols)
	assert.Equal(t, 20, c.MaxSteps)
	assert.Equal(t, game.Range{Min: 0, Max: 1}, c.Enemies)
	assert.Equal(t, game.DefaultConfig().Fruit, c.Fruit)

	want := &esarsa.Config{BehaviourE: 0.2, TargetE: 0.05, LearningRate: 0.01}
	assert.Equal(t, want, e.Agent.Config())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "experiment.json", `{
  "steps": 10,
  "agent": {
    "EGreedyQLearning-Linear": {
      "epsilon": 0.3,
      "learning_rate": 0.5
    }
  }
}`)

	e, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, e.Steps)
	assert.Equal(t, &qlearning.Config{Epsilon: 0.3, LearningRate: 0.5},
		e.Agent.Config())
	assert.Equal(t, DefaultCheckpointEvery, e.Output.CheckpointEvery)
}

func TestLoadWithoutAgent(t *testing.T) {
	path := writeFile(t, "experiment.hcl", "steps = 3\n")

	e, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Steps)
	assert.Equal(t, agent.EGreedyQLearningLinear, e.Agent.Config().Type())
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":        "steps = \n",
		"unknown agent": `agent "DQN" {}`,
		"missing field": `agent "EGreedyQLearning-Linear" { epsilon = 0.1 }`,
		"bad epsilon": `agent "EGreedyQLearning-Linear" {
  epsilon       = 2
  learning_rate = 0.1
}`,
		"bad discount": "environment {\n  discount = 1.5\n}\n",
		"bad board":    "environment {\n  min_enemies = 3\n  max_enemies = 1\n}\n",
		"bad steps":    "steps = -4\n",
		"bad frames":   "output {\n  max_frames = -1\n}\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "experiment.hcl", contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
