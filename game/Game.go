// Package game implements the Bad Ice Cream grid game: a player moves
// around a board collecting fruit while roaming enemies try to catch
// it. The player may drop blocks, which stop enemies but are deadly
// for the player to walk into.
package game

import (
	"fmt"

	"github.com/samuelfneumann/badicecream/environment"
	"golang.org/x/exp/rand"
)

// Game holds the state of a single Bad Ice Cream board. A Game is not
// safe for concurrent use.
type Game struct {
	config Config
	rng    *rand.Rand
	cells  environment.Starter
	roamer Roamer

	grid    Grid
	player  Position
	enemies []Position
	fruit   []Position
	blocks  []Position

	steps   int
	score   float64
	outcome Outcome
}

// New returns a new Game which has been reset with the given seed
func New(c Config, seed uint64) (*Game, error) {
	if err := c.Validate(); err != nil {
		return nil, &Error{Op: "new", Err: err}
	}

	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		config: c,
		rng:    rng,
		cells:  environment.NewCategoricalStarter([]int{c.Rows, c.Cols}, rng),
		roamer: NewRandomRoamer(rng),
		grid:   NewGrid(c.Rows, c.Cols),
	}
	g.Reset()

	return g, nil
}

// SetRoamer replaces the enemy movement policy
func (g *Game) SetRoamer(r Roamer) {
	g.roamer = r
}

// Config returns the configuration of the game
func (g *Game) Config() Config {
	return g.config
}

// Outcome returns the state of the current episode
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Reset starts a new episode. The player, a random number of enemies,
// and a random number of fruit are placed independently and uniformly
// on the board. Entities may share cells.
func (g *Game) Reset() (Grid, Info) {
	g.player = g.randomCell()

	g.enemies = make([]Position, g.between(g.config.Enemies))
	for i := range g.enemies {
		g.enemies[i] = g.randomCell()
	}

	g.fruit = make([]Position, g.between(g.config.Fruit))
	for i := range g.fruit {
		g.fruit[i] = g.randomCell()
	}

	g.blocks = nil
	g.restart()

	return g.grid.Clone(), g.info()
}

// ResetSeed reseeds the game's random number generator and then resets
func (g *Game) ResetSeed(seed uint64) (Grid, Info) {
	g.rng.Seed(seed)
	return g.Reset()
}

// Load starts a new episode from an explicit layout
func (g *Game) Load(l Layout) error {
	positions := [][]Position{{l.Player}, l.Enemies, l.Fruit, l.Blocks}
	for _, group := range positions {
		for _, p := range group {
			if !g.grid.Contains(p) {
				return &Error{Op: "load", Err: fmt.Errorf("%w: %v",
					ErrOutOfBounds, p)}
			}
		}
	}

	g.player = l.Player
	g.enemies = clonePositions(l.Enemies)
	g.fruit = clonePositions(l.Fruit)
	g.blocks = clonePositions(l.Blocks)
	g.restart()

	return nil
}

// Step takes one action in the game. Death, timeout, and winning are
// reported through the Result. An error is returned only if the action
// is invalid or the episode has already ended.
//
// Non-terminal steps are rewarded with the score collected so far in
// the episode. Terminal steps are rewarded with the reward of the
// terminal event alone.
func (g *Game) Step(a Action) (Result, error) {
	if !a.Valid() {
		return Result{}, &Error{Op: "step", Err: fmt.Errorf("%w: %d",
			ErrInvalidAction, int(a))}
	}
	if g.outcome.Terminal() {
		return Result{}, &Error{Op: "step", Err: ErrEpisodeOver}
	}
	g.steps++

	dRow, dCol, move := a.offset()
	if !move {
		g.blocks = append(g.blocks, g.player)
		g.rebuild()
		return g.result(0), nil
	}

	candidate := g.grid.Clamp(g.player.Add(dRow, dCol))
	if contains(g.enemies, candidate) {
		return g.end(DeadByEnemy, g.config.Rewards.Enemy), nil
	}
	if g.grid.At(candidate) == Block {
		return g.end(DeadByBlock, g.config.Rewards.Block), nil
	}

	g.player = candidate
	g.rebuild()

	if g.grid.At(g.player) == Fruit {
		g.score += g.config.Rewards.Fruit
		g.fruit = remove(g.fruit, g.player)
		g.rebuild()
	}

	g.moveEnemies()

	switch {
	case contains(g.enemies, g.player):
		return g.end(DeadByEnemy, g.config.Rewards.Enemy), nil
	case g.steps > g.config.MaxSteps:
		return g.end(Timeout, g.config.Rewards.Timeout), nil
	case len(g.fruit) == 0:
		return g.end(Win, g.config.Rewards.Win), nil
	}

	return g.result(g.score), nil
}

// Snapshot returns a copy of the current game state
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Grid:      g.grid.Clone(),
		CellSize:  g.config.CellSize,
		Player:    g.player,
		Enemies:   clonePositions(g.enemies),
		Fruit:     clonePositions(g.fruit),
		Blocks:    clonePositions(g.blocks),
		Steps:     g.steps,
		StepsLeft: g.config.MaxSteps - g.steps,
		Score:     g.score,
		Outcome:   g.outcome,
	}
}

func (g *Game) String() string {
	return fmt.Sprintf("%vSteps Left: %d", g.grid, g.config.MaxSteps-g.steps)
}

// moveEnemies gives every enemy one turn. Enemies decide against the
// board as it was before any of them moved, and never enter a fruit or
// block cell.
func (g *Game) moveEnemies() {
	moved := make([]Position, len(g.enemies))
	for i, enemy := range g.enemies {
		dRow, dCol := g.roamer.Roam(enemy).offset()
		next := g.grid.Clamp(enemy.Add(dRow, dCol))

		if cell := g.grid.At(next); cell == Block || cell == Fruit {
			next = enemy
		}
		moved[i] = next
	}

	g.enemies = moved
	g.rebuild()
}

// rebuild redraws the grid from the entity lists. Later layers
// overwrite earlier ones: player, enemies, fruit, then blocks.
func (g *Game) rebuild() {
	g.grid.clear()

	g.grid.set(g.player, Player)
	for _, p := range g.enemies {
		g.grid.set(p, Enemy)
	}
	for _, p := range g.fruit {
		g.grid.set(p, Fruit)
	}
	for _, p := range g.blocks {
		g.grid.set(p, Block)
	}
}

func (g *Game) restart() {
	g.steps = 0
	g.score = 0
	g.outcome = Active
	g.rebuild()
}

func (g *Game) end(o Outcome, reward float64) Result {
	g.outcome = o
	return g.result(reward)
}

func (g *Game) result(reward float64) Result {
	return Result{
		Grid:      g.grid.Clone(),
		Reward:    reward,
		Terminal:  g.outcome.Terminal(),
		Truncated: g.outcome.Truncated(),
		Info:      g.info(),
	}
}

func (g *Game) info() Info {
	return Info{
		Outcome:   g.outcome,
		Steps:     g.steps,
		StepsLeft: g.config.MaxSteps - g.steps,
		Score:     g.score,
		Enemies:   len(g.enemies),
		Fruit:     len(g.fruit),
		Blocks:    len(g.blocks),
	}
}

func (g *Game) randomCell() Position {
	cell := g.cells.Start()
	return Position{Row: int(cell.AtVec(0)), Col: int(cell.AtVec(1))}
}

func (g *Game) between(r Range) int {
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}

func contains(positions []Position, p Position) bool {
	for _, q := range positions {
		if q == p {
			return true
		}
	}
	return false
}

// remove removes the first occurrence of p
func remove(positions []Position, p Position) []Position {
	for i, q := range positions {
		if q == p {
			return append(positions[:i], positions[i+1:]...)
		}
	}
	return positions
}
