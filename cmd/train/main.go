// Command train trains an agent to play Bad Ice Cream and records one
// greedy episode of the trained agent as an animated GIF.
//
// Usage:
//
//	train [-config experiment.hcl] [-gif game.gif] [-v]
//
// Returns and episode lengths are saved with encoding/gob, per-episode
// rows are saved as parquet, and the agent's weights are checkpointed,
// all under the output directory of the configuration.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/badicecream/agent"
	"github.com/samuelfneumann/badicecream/config"
	"github.com/samuelfneumann/badicecream/environment"
	"github.com/samuelfneumann/badicecream/environment/icecream"
	"github.com/samuelfneumann/badicecream/environment/wrappers"
	"github.com/samuelfneumann/badicecream/experiment"
	"github.com/samuelfneumann/badicecream/experiment/checkpointer"
	"github.com/samuelfneumann/badicecream/experiment/tracker"
	"github.com/samuelfneumann/badicecream/render"
	"github.com/samuelfneumann/badicecream/utils/progressbar"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	ReturnsFile  string = "returns.bin"
	LengthsFile  string = "lengths.bin"
	EpisodesFile string = "episodes.parquet"
	WeightsFile  string = "weights.bin"
)

func main() {
	configFile := flag.String("config", "", "experiment configuration "+
		"file (.hcl or .json), defaults are used if empty")
	gifFile := flag.String("gif", "", "file to record the greedy episode "+
		"to, overrides the configuration")
	verbose := flag.Bool("v", false, "log every finished episode")
	quiet := flag.Bool("q", false, "do not display a progress bar")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			logger.Error("could not load configuration", "error", err)
			os.Exit(1)
		}
	}
	if *gifFile != "" {
		cfg.Output.GIF = *gifFile
	}

	var bar io.Writer = os.Stderr
	if *quiet || *verbose {
		bar = io.Discard
	}

	if err := run(cfg, logger, bar); err != nil {
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}
}

// run trains the agent described by cfg, saves the experiment data,
// and records a greedy episode. Progress is drawn to bar.
func run(cfg config.Experiment, logger *slog.Logger, bar io.Writer) error {
	dir := cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	iceCream, _, err := icecream.New(cfg.Game(), cfg.Environment.Discount,
		cfg.Seed)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	env, _, err := wrappers.NewOneHot(iceCream)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	a, err := cfg.Agent.Config().CreateAgent(env, cfg.Seed+1)
	if err != nil {
		return fmt.Errorf("run: could not create agent: %w", err)
	}
	saver, ok := a.(agent.Saver)
	if !ok {
		return fmt.Errorf("run: agent %T cannot be saved", a)
	}

	weights := filepath.Join(dir, WeightsFile)
	check, err := checkpointer.NewNStep(cfg.Output.CheckpointEvery, saver,
		checkpointer.Filename(weights))
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	returns := tracker.NewReturn(filepath.Join(dir, ReturnsFile))
	trackers := []tracker.Tracker{
		returns,
		tracker.NewEpisodeLength(filepath.Join(dir, LengthsFile)),
		tracker.NewEpisodes(filepath.Join(dir, EpisodesFile)),
	}

	logger.Info("training",
		"agent", cfg.Agent.Type,
		"steps", cfg.Steps,
		"rows", cfg.Game().Rows,
		"cols", cfg.Game().Cols,
		"seed", cfg.Seed,
	)

	o := experiment.NewOnline(env, a, uint(cfg.Steps), trackers,
		[]checkpointer.Checkpointer{check}, experiment.WithLogger(logger))

	progress := progressbar.NewManualProgressBar(bar, 50, cfg.Steps)
	for ended := false; !ended; {
		if ended, err = o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		progress.Set(int(o.Steps()))
		progress.Display()
	}
	fmt.Fprintln(bar)

	if err := o.Save(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if err := saver.Save(weights); err != nil {
		return fmt.Errorf("run: could not save weights: %w", err)
	}
	summarize(logger, o.Episodes(), returns.Returns())
	logger.Debug("learned weights", "agent", a)

	gif := cfg.Output.GIF
	if !filepath.IsAbs(gif) {
		gif = filepath.Join(dir, gif)
	}
	frames, err := record(iceCream, env, a, gif, cfg.Output.MaxFrames)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("recorded greedy episode", "file", gif, "frames", frames,
		"outcome", iceCream.Game().Outcome())

	return nil
}

// summarize logs statistics of the episodic returns
func summarize(logger *slog.Logger, episodes int, returns []float64) {
	if len(returns) == 0 {
		logger.Warn("no episodes finished")
		return
	}

	mean, std := stat.MeanStdDev(returns, nil)
	last := returns[max(0, len(returns)-100):]
	logger.Info("finished training",
		"episodes", episodes,
		"mean_return", mean,
		"std_return", std,
		"best_return", floats.Max(returns),
		"recent_mean_return", stat.Mean(last, nil),
	)
}

// record runs one greedy episode of a on env for at most maxSteps
// steps and saves each frame of the underlying game to filename. The
// number of frames is returned.
func record(game *icecream.IceCream, env environment.Environment,
	a agent.Agent, filename string, maxSteps int) (int, error) {
	recorder, err := render.NewRecorder(render.DefaultFPS)
	if err != nil {
		return 0, fmt.Errorf("record: %w", err)
	}

	a.Eval()
	defer a.Train()

	step, err := env.Reset()
	if err != nil {
		return 0, fmt.Errorf("record: %w", err)
	}
	recorder.Record(game.Game().Snapshot())

	for steps := 0; !step.Last() && steps < maxSteps; steps++ {
		step, _, err = env.Step(a.SelectAction(step))
		if err != nil {
			return 0, fmt.Errorf("record: %w", err)
		}
		recorder.Record(game.Game().Snapshot())
	}

	if err := recorder.Save(filename); err != nil {
		return 0, fmt.Errorf("record: %w", err)
	}
	return recorder.Len(), nil
}
