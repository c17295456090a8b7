package main

import (
	"bytes"
	"image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/samuelfneumann/badicecream/config"
	"github.com/samuelfneumann/badicecream/environment/icecream"
	"github.com/samuelfneumann/badicecream/experiment/tracker"
	"github.com/samuelfneumann/badicecream/game"
	ts "github.com/samuelfneumann/badicecream/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experiment.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
seed  = 3
steps = 300

environment {
  rows        = 4
  cols        = 4
  max_steps   = 10
  min_enemies = 1
  max_enemies = 2
  min_fruit   = 1
  max_fruit   = 2
}

agent "EGreedyESarsa-Linear" {
  behaviour_epsilon = 0.1
  target_epsilon    = 0.0
  learning_rate     = 0.05
}

output {
  dir              = "`+filepath.Join(dir, "out")+`"
  checkpoint_every = 50
  gif              = "greedy.gif"
  max_frames       = 25
}
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	var logs, bar bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	require.NoError(t, run(cfg, logger, &bar))

	out := filepath.Join(dir, "out")
	returns, err := tracker.LoadData(filepath.Join(out, ReturnsFile))
	require.NoError(t, err)
	require.NotEmpty(t, returns)

	lengths, err := tracker.LoadData(filepath.Join(out, LengthsFile))
	require.NoError(t, err)
	assert.Len(t, lengths, len(returns))

	rows, err := parquet.ReadFile[tracker.EpisodeRow](
		filepath.Join(out, EpisodesFile))
	require.NoError(t, err)
	assert.Len(t, rows, len(returns))

	_, err = os.Stat(filepath.Join(out, WeightsFile))
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(out, "greedy.gif"))
	require.NoError(t, err)
	defer file.Close()
	anim, err := gif.DecodeAll(file)
	require.NoError(t, err)

	// A frame for the reset board and one per step
	assert.GreaterOrEqual(t, len(anim.Image), 2)
	assert.LessOrEqual(t, len(anim.Image), 26)

	assert.True(t, strings.Contains(logs.String(), "finished training"))
	assert.True(t, strings.Contains(logs.String(), "recorded greedy episode"))
	assert.Contains(t, bar.String(), "%")
}

// blockPlacer is an agent which only ever places blocks
type blockPlacer struct {
	eval bool
}

func (b *blockPlacer) Step() error                           { return nil }
func (b *blockPlacer) Observe(mat.Vector, ts.TimeStep) error { return nil }
func (b *blockPlacer) ObserveFirst(ts.TimeStep) error        { return nil }
func (b *blockPlacer) EndEpisode()                           {}
func (b *blockPlacer) Eval()                                 { b.eval = true }
func (b *blockPlacer) Train()                                { b.eval = false }
func (b *blockPlacer) IsEval() bool                          { return b.eval }

func (b *blockPlacer) SelectAction(ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(game.PlaceBlock)})
}

func TestRecordStopsAtMaxFrames(t *testing.T) {
	e, _, err := icecream.New(game.DefaultConfig(), icecream.DefaultDiscount,
		1)
	require.NoError(t, err)

	a := &blockPlacer{}
	filename := filepath.Join(t.TempDir(), "blocks.gif")
	frames, err := record(e, e, a, filename, 50)
	require.NoError(t, err)

	assert.Equal(t, 51, frames)
	assert.Equal(t, game.Active, e.Game().Outcome())
	assert.Len(t, e.Game().Snapshot().Blocks, 50)
	assert.False(t, a.IsEval())

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()
	anim, err := gif.DecodeAll(file)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 51)
}
