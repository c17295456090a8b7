package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fixedRoamer always roams in the same direction
type fixedRoamer Direction

func (f fixedRoamer) Roam(Position) Direction {
	return Direction(f)
}

func newGame(t *testing.T, rows, cols int, l Layout) *Game {
	t.Helper()

	c := DefaultConfig()
	c.Rows, c.Cols = rows, cols

	g, err := New(c, 1)
	require.NoError(t, err)
	g.SetRoamer(fixedRoamer(South))
	require.NoError(t, g.Load(l))

	return g
}

func TestResetPopulation(t *testing.T) {
	g, err := New(DefaultConfig(), 0)
	require.NoError(t, err)

	for seed := uint64(0); seed < 100; seed++ {
		grid, info := g.ResetSeed(seed)

		require.Equal(t, Active, info.Outcome)
		require.Zero(t, info.Steps)
		require.Zero(t, info.Score)
		require.Zero(t, info.Blocks)
		require.Equal(t, DefaultMaxSteps, info.StepsLeft)
		require.GreaterOrEqual(t, info.Enemies, 3)
		require.LessOrEqual(t, info.Enemies, 5)
		require.GreaterOrEqual(t, info.Fruit, 3)
		require.LessOrEqual(t, info.Fruit, 7)

		rows, cols := grid.Dims()
		require.Equal(t, DefaultRows, rows)
		require.Equal(t, DefaultCols, cols)

		s := g.Snapshot()
		require.True(t, grid.Contains(s.Player))
		for _, p := range append(s.Enemies, s.Fruit...) {
			require.True(t, grid.Contains(p), "position %v off the grid", p)
		}
	}
}

func TestResetSeedDeterministic(t *testing.T) {
	g, err := New(DefaultConfig(), 0)
	require.NoError(t, err)

	first, _ := g.ResetSeed(42)
	g.Step(MoveLeft)
	second, _ := g.ResetSeed(42)

	if diff := cmp.Diff(first.Values(), second.Values()); diff != "" {
		t.Errorf("same seed produced different boards (-first +second):\n%s",
			diff)
	}
}

func TestResetClearsEpisode(t *testing.T) {
	g, err := New(DefaultConfig(), 3)
	require.NoError(t, err)

	_, err = g.Step(PlaceBlock)
	require.NoError(t, err)
	require.Len(t, g.Snapshot().Blocks, 1)

	_, info := g.Reset()
	require.Zero(t, info.Blocks)
	require.Zero(t, info.Steps)
	require.Equal(t, Active, info.Outcome)
}

func TestNewInvalidConfig(t *testing.T) {
	tests := map[string]func(c *Config){
		"no rows":        func(c *Config) { c.Rows = 0 },
		"no cols":        func(c *Config) { c.Cols = -1 },
		"no steps":       func(c *Config) { c.MaxSteps = 0 },
		"no cell size":   func(c *Config) { c.CellSize = 0 },
		"enemy range":    func(c *Config) { c.Enemies = Range{Min: 4, Max: 2} },
		"negative fruit": func(c *Config) { c.Fruit = Range{Min: -1, Max: 2} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)

			_, err := New(c, 0)
			require.ErrorIs(t, err, ErrInvalidConfig)

			var gameErr *Error
			require.ErrorAs(t, err, &gameErr)
			require.Equal(t, "new", gameErr.Op)
		})
	}
}

func TestLoadOutOfBounds(t *testing.T) {
	g, err := New(DefaultConfig(), 0)
	require.NoError(t, err)

	err = g.Load(Layout{Player: Position{0, 0},
		Fruit: []Position{{DefaultRows, 0}}})
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCollectLastFruitWins(t *testing.T) {
	g := newGame(t, 2, 2, Layout{
		Player:  Position{0, 0},
		Enemies: []Position{{1, 1}},
		Fruit:   []Position{{0, 1}},
	})

	result, err := g.Step(MoveRight)
	require.NoError(t, err)

	require.Equal(t, WinReward, result.Reward)
	require.True(t, result.Terminal)
	require.False(t, result.Truncated)
	require.Equal(t, Win, result.Info.Outcome)
	require.Zero(t, result.Info.Fruit)
	require.Equal(t, FruitReward, result.Info.Score)
	require.Equal(t, Player, result.Grid.At(Position{0, 1}))
}

func TestMoveIntoEnemy(t *testing.T) {
	g := newGame(t, 2, 2, Layout{
		Player:  Position{0, 0},
		Enemies: []Position{{0, 1}},
		Fruit:   []Position{{1, 1}},
	})
	before := g.Snapshot()

	result, err := g.Step(MoveRight)
	require.NoError(t, err)

	require.Equal(t, EnemyReward, result.Reward)
	require.True(t, result.Terminal)
	require.False(t, result.Truncated)
	require.Equal(t, DeadByEnemy, result.Info.Outcome)

	after := g.Snapshot()
	require.Equal(t, before.Player, after.Player)
	require.Equal(t, before.Enemies, after.Enemies)
}

func TestMoveIntoBlock(t *testing.T) {
	g := newGame(t, 3, 3, Layout{
		Player: Position{1, 1},
		Fruit:  []Position{{2, 2}},
		Blocks: []Position{{0, 1}},
	})

	result, err := g.Step(MoveUp)
	require.NoError(t, err)

	require.Equal(t, BlockReward, result.Reward)
	require.True(t, result.Terminal)
	require.True(t, result.Truncated)
	require.Equal(t, DeadByBlock, result.Info.Outcome)
	require.Equal(t, Position{1, 1}, g.Snapshot().Player)
}

func TestPlaceBlock(t *testing.T) {
	g := newGame(t, 3, 3, Layout{
		Player:  Position{1, 1},
		Enemies: []Position{{0, 0}},
		Fruit:   []Position{{2, 2}},
	})
	before := g.Snapshot()

	result, err := g.Step(PlaceBlock)
	require.NoError(t, err)

	require.Zero(t, result.Reward)
	require.False(t, result.Terminal)
	require.False(t, result.Truncated)
	require.Equal(t, 1, result.Info.Steps)

	after := g.Snapshot()
	require.Equal(t, []Position{{1, 1}}, after.Blocks)
	require.Equal(t, before.Player, after.Player)
	require.Equal(t, before.Enemies, after.Enemies)
	require.Equal(t, Block, after.Grid.At(Position{1, 1}))
}

func TestLeaveBlockThenReturn(t *testing.T) {
	g := newGame(t, 1, 4, Layout{
		Player: Position{0, 0},
		Fruit:  []Position{{0, 3}},
	})

	_, err := g.Step(PlaceBlock)
	require.NoError(t, err)
	_, err = g.Step(MoveRight)
	require.NoError(t, err)

	result, err := g.Step(MoveLeft)
	require.NoError(t, err)
	require.Equal(t, DeadByBlock, result.Info.Outcome)
	require.Equal(t, BlockReward, result.Reward)
}

func TestTimeout(t *testing.T) {
	g := newGame(t, 1, 3, Layout{
		Player: Position{0, 0},
		Fruit:  []Position{{0, 2}},
	})

	actions := []Action{MoveRight, MoveLeft}
	for i := 1; i <= DefaultMaxSteps; i++ {
		result, err := g.Step(actions[i%2])
		require.NoError(t, err)
		require.False(t, result.Terminal, "step %d ended the episode", i)
		require.Zero(t, result.Reward)
		require.Equal(t, DefaultMaxSteps-i, result.Info.StepsLeft)
	}

	result, err := g.Step(MoveLeft)
	require.NoError(t, err)
	require.Equal(t, TimeoutReward, result.Reward)
	require.True(t, result.Terminal)
	require.True(t, result.Truncated)
	require.Equal(t, Timeout, result.Info.Outcome)
	require.Equal(t, -1, result.Info.StepsLeft)
}

func TestEnemyCatchesPlayer(t *testing.T) {
	g := newGame(t, 2, 3, Layout{
		Player:  Position{0, 0},
		Enemies: []Position{{0, 2}},
		Fruit:   []Position{{1, 2}},
	})
	g.SetRoamer(fixedRoamer(West))

	result, err := g.Step(MoveRight)
	require.NoError(t, err)

	require.Equal(t, DeadByEnemy, result.Info.Outcome)
	require.Equal(t, EnemyReward, result.Reward)
	require.Equal(t, Position{0, 1}, g.Snapshot().Player)
}

func TestEnemiesAvoidFruitAndBlocks(t *testing.T) {
	g := newGame(t, 3, 3, Layout{
		Player:  Position{2, 0},
		Enemies: []Position{{0, 2}, {1, 2}},
		Fruit:   []Position{{0, 1}},
		Blocks:  []Position{{1, 1}},
	})
	g.SetRoamer(fixedRoamer(West))

	result, err := g.Step(MoveDown)
	require.NoError(t, err)
	require.False(t, result.Terminal)
	require.Equal(t, []Position{{0, 2}, {1, 2}}, g.Snapshot().Enemies)
}

func TestEnemiesShareCells(t *testing.T) {
	g := newGame(t, 1, 5, Layout{
		Player:  Position{0, 4},
		Enemies: []Position{{0, 1}, {0, 2}},
		Fruit:   []Position{{0, 0}},
	})
	g.SetRoamer(fixedRoamer(East))

	// The trailing enemy steps onto the cell its neighbour just left
	result, err := g.Step(MoveUp)
	require.NoError(t, err)
	require.Equal(t, []Position{{0, 2}, {0, 3}}, g.Snapshot().Enemies)
	require.False(t, result.Terminal)
}

func TestMoveClampsAtWall(t *testing.T) {
	g := newGame(t, 2, 2, Layout{
		Player: Position{0, 0},
		Fruit:  []Position{{1, 1}},
	})

	result, err := g.Step(MoveUp)
	require.NoError(t, err)
	require.False(t, result.Terminal)
	require.Equal(t, Position{0, 0}, g.Snapshot().Player)
}

func TestFruitRewardAccumulates(t *testing.T) {
	g := newGame(t, 1, 4, Layout{
		Player: Position{0, 0},
		Fruit:  []Position{{0, 1}, {0, 2}, {0, 3}},
	})

	result, err := g.Step(MoveRight)
	require.NoError(t, err)
	require.Equal(t, 1.0, result.Reward)

	result, err = g.Step(MoveLeft)
	require.NoError(t, err)
	require.Equal(t, 1.0, result.Reward)

	result, err = g.Step(MoveRight)
	require.NoError(t, err)
	require.Equal(t, 1.0, result.Reward)

	result, err = g.Step(MoveRight)
	require.NoError(t, err)
	require.Equal(t, 2.0, result.Reward)
	require.Equal(t, 1, result.Info.Fruit)
}

func TestStepAfterEpisodeOver(t *testing.T) {
	g := newGame(t, 2, 2, Layout{
		Player:  Position{0, 0},
		Enemies: []Position{{0, 1}},
		Fruit:   []Position{{1, 1}},
	})

	_, err := g.Step(MoveRight)
	require.NoError(t, err)

	_, err = g.Step(MoveDown)
	require.True(t, IsEpisodeOver(err))
	require.Equal(t, 1, g.Snapshot().Steps)
}

func TestInvalidAction(t *testing.T) {
	g, err := New(DefaultConfig(), 0)
	require.NoError(t, err)

	for _, a := range []Action{-1, NumActions, 99} {
		_, err := g.Step(a)
		require.True(t, IsInvalidAction(err), "action %v accepted", a)
	}
	require.Zero(t, g.Snapshot().Steps)
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newGame(t, 2, 2, Layout{
		Player:  Position{0, 0},
		Enemies: []Position{{1, 0}},
		Fruit:   []Position{{1, 1}},
	})

	s := g.Snapshot()
	s.Enemies[0] = Position{0, 1}
	s.Fruit = nil

	fresh := g.Snapshot()
	require.Equal(t, []Position{{1, 0}}, fresh.Enemies)
	require.Len(t, fresh.Fruit, 1)
	require.Equal(t, Enemy, fresh.Grid.At(Position{1, 0}))
}

func TestRandomPlayInvariants(t *testing.T) {
	g, err := New(DefaultConfig(), 7)
	require.NoError(t, err)

	for episode := uint64(0); episode < 50; episode++ {
		g.ResetSeed(episode)
		fruit := g.Snapshot().Fruit

		for step := 0; ; step++ {
			a := Action(g.rng.Intn(NumActions))
			result, err := g.Step(a)
			require.NoError(t, err)

			s := g.Snapshot()
			require.True(t, s.Grid.Contains(s.Player))
			for _, p := range s.Enemies {
				require.True(t, s.Grid.Contains(p))
			}
			require.LessOrEqual(t, len(s.Fruit), len(fruit))
			fruit = s.Fruit

			if a == PlaceBlock && !result.Terminal {
				require.Equal(t, Block, s.Grid.At(s.Player))
			}
			if result.Terminal {
				require.LessOrEqual(t, step, DefaultMaxSteps)
				break
			}
		}
	}
}

func BenchmarkStep(b *testing.B) {
	g, err := New(DefaultConfig(), 0)
	if err != nil {
		b.Fatal(err)
	}
	g.SetRoamer(fixedRoamer(North))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Step(Action(i % 4)); err != nil {
			g.Reset()
		}
	}
}
