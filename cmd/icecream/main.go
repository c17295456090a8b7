// Command icecream plays Bad Ice Cream in the terminal.
//
// Arrow keys move the player, space places a block, r starts a new
// episode, and q quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samuelfneumann/badicecream/game"
	"github.com/samuelfneumann/badicecream/render"
)

var keyActions = map[string]game.Action{
	"up":    game.MoveUp,
	"down":  game.MoveDown,
	"left":  game.MoveLeft,
	"right": game.MoveRight,
	"k":     game.MoveUp,
	"j":     game.MoveDown,
	"h":     game.MoveLeft,
	"l":     game.MoveRight,
	" ":     game.PlaceBlock,
}

type model struct {
	game   *game.Game
	plain  bool
	reward float64
	status string
}

func newModel(g *game.Game, plain bool) model {
	return model{game: g, plain: plain}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.game.Reset()
		m.reward, m.status = 0, ""
		return m, nil
	}

	action, ok := keyActions[key.String()]
	if !ok {
		return m, nil
	}

	result, err := m.game.Step(action)
	if game.IsEpisodeOver(err) {
		m.status = "episode over, press r to play again"
		return m, nil
	} else if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.reward = result.Reward
	m.status = ""
	if result.Terminal {
		m.status = fmt.Sprintf("%v, press r to play again",
			result.Info.Outcome)
	}
	return m, nil
}

func (m model) View() string {
	s := m.game.Snapshot()

	var board string
	if m.plain {
		board = render.Plain(s)
	} else {
		board = render.Styled(s)
	}

	view := fmt.Sprintf("%s\nReward: %.0f\n", board, m.reward)
	if m.status != "" {
		view += m.status + "\n"
	}
	return view + "\narrows/hjkl move, space blocks, r resets, q quits\n"
}

func main() {
	defaults := game.DefaultConfig()

	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()),
		"seed for the game's random number generator")
	rows := flag.Int("rows", defaults.Rows, "number of board rows")
	cols := flag.Int("cols", defaults.Cols, "number of board columns")
	maxSteps := flag.Int("max-steps", defaults.MaxSteps,
		"number of steps before an episode times out")
	plain := flag.Bool("plain", false, "draw the board without colour")
	flag.Parse()

	c := defaults
	c.Rows, c.Cols, c.MaxSteps = *rows, *cols, *maxSteps

	g, err := game.New(c, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(newModel(g, *plain)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
