package game

// Outcome describes the state of an episode
type Outcome int

const (
	Active Outcome = iota
	DeadByEnemy
	DeadByBlock
	Timeout
	Win
)

// Terminal returns whether the episode has ended
func (o Outcome) Terminal() bool {
	return o != Active
}

// Truncated returns whether the episode ended without the player
// either winning or being caught
func (o Outcome) Truncated() bool {
	return o == DeadByBlock || o == Timeout
}

func (o Outcome) String() string {
	switch o {
	case DeadByEnemy:
		return "DeadByEnemy"
	case DeadByBlock:
		return "DeadByBlock"
	case Timeout:
		return "Timeout"
	case Win:
		return "Win"
	}
	return "Active"
}

// Info is the diagnostic information returned alongside observations
type Info struct {
	Outcome   Outcome
	Steps     int
	StepsLeft int
	Score     float64
	Enemies   int
	Fruit     int
	Blocks    int
}

// Result is the outcome of a single Step
type Result struct {
	Grid      Grid
	Reward    float64
	Terminal  bool
	Truncated bool
	Info      Info
}

// Snapshot is a copy of the full game state. Mutating a Snapshot never
// affects the Game it was taken from.
type Snapshot struct {
	Grid      Grid
	CellSize  int
	Player    Position
	Enemies   []Position
	Fruit     []Position
	Blocks    []Position
	Steps     int
	StepsLeft int
	Score     float64
	Outcome   Outcome
}

// Layout is an explicit placement of every entity on the board
type Layout struct {
	Player  Position
	Enemies []Position
	Fruit   []Position
	Blocks  []Position
}

func clonePositions(p []Position) []Position {
	c := make([]Position, len(p))
	copy(c, p)
	return c
}
