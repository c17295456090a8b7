package game

import "fmt"

// Action is one of the five player inputs
type Action int

const (
	MoveUp Action = iota
	MoveDown
	MoveLeft
	MoveRight
	PlaceBlock
)

// NumActions is the number of valid actions
const NumActions = 5

// Valid returns whether a is one of the five actions
func (a Action) Valid() bool {
	return a >= MoveUp && a <= PlaceBlock
}

// offset returns the unit displacement of a movement action. ok is
// false for PlaceBlock.
func (a Action) offset() (dRow, dCol int, ok bool) {
	switch a {
	case MoveUp:
		return -1, 0, true
	case MoveDown:
		return 1, 0, true
	case MoveLeft:
		return 0, -1, true
	case MoveRight:
		return 0, 1, true
	}
	return 0, 0, false
}

func (a Action) String() string {
	switch a {
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case PlaceBlock:
		return "PlaceBlock"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Direction is a compass direction an enemy may roam in
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// NumDirections is the number of directions an enemy chooses from
const NumDirections = 4

func (d Direction) offset() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	panic(fmt.Sprintf("offset: invalid direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
