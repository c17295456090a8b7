package game

import "fmt"

// Cell is the content of a single grid square. The numeric values are
// the ones exposed in observations.
type Cell int

const (
	Empty Cell = iota
	Player
	Enemy
	Fruit
	Block
)

// NumCells is the number of distinct cell values
const NumCells = 5

func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Player:
		return "Player"
	case Enemy:
		return "Enemy"
	case Fruit:
		return "Fruit"
	case Block:
		return "Block"
	}
	return fmt.Sprintf("Cell(%d)", int(c))
}

// Rune returns the character used for the cell in text frames
func (c Cell) Rune() rune {
	switch c {
	case Player:
		return 'P'
	case Enemy:
		return 'E'
	case Fruit:
		return 'F'
	case Block:
		return '#'
	}
	return '.'
}
