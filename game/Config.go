package game

import "fmt"

const (
	WorldWidth  int = 800
	WorldHeight int = 600
	CellSize    int = 50

	DefaultRows int = WorldHeight / CellSize
	DefaultCols int = WorldWidth / CellSize

	DefaultMaxSteps int = 40

	EnemyReward   float64 = -10.0
	BlockReward   float64 = -1.0
	TimeoutReward float64 = -10.0
	WinReward     float64 = 10.0
	FruitReward   float64 = 1.0
)

// Range is an inclusive range of entity counts
type Range struct {
	Min, Max int
}

// Rewards holds the reward of each kind of event. Enemy, Block,
// Timeout, and Win are returned as-is on terminal steps, while Fruit is
// added to the running score.
type Rewards struct {
	Enemy   float64
	Block   float64
	Timeout float64
	Win     float64
	Fruit   float64
}

// Config describes the board and the rules of a Game
type Config struct {
	Rows     int
	Cols     int
	CellSize int
	MaxSteps int

	Enemies Range
	Fruit   Range

	Rewards Rewards
}

// DefaultConfig returns the configuration of the classic 800 x 600
// board
func DefaultConfig() Config {
	return Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		CellSize: CellSize,
		MaxSteps: DefaultMaxSteps,
		Enemies:  Range{Min: 3, Max: 5},
		Fruit:    Range{Min: 3, Max: 7},
		Rewards: Rewards{
			Enemy:   EnemyReward,
			Block:   BlockReward,
			Timeout: TimeoutReward,
			Win:     WinReward,
			Fruit:   FruitReward,
		},
	}
}

// Validate returns an error wrapping ErrInvalidConfig if c cannot
// describe a game
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d",
			ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.CellSize < 1 {
		return fmt.Errorf("%w: cell size must be positive, got %d",
			ErrInvalidConfig, c.CellSize)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w: max steps must be positive, got %d",
			ErrInvalidConfig, c.MaxSteps)
	}
	if err := c.Enemies.validate("enemies"); err != nil {
		return err
	}
	return c.Fruit.validate("fruit")
}

func (r Range) validate(name string) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%w: %s range [%d, %d] must satisfy 0 <= min <= max",
			ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}
