package game

import "golang.org/x/exp/rand"

// Roamer chooses the direction an enemy tries to move in on its turn
type Roamer interface {
	Roam(from Position) Direction
}

// RandomRoamer picks one of the four directions uniformly at random
type RandomRoamer struct {
	rng *rand.Rand
}

// NewRandomRoamer returns a RandomRoamer drawing from rng
func NewRandomRoamer(rng *rand.Rand) *RandomRoamer {
	return &RandomRoamer{rng}
}

// Roam implements the Roamer interface
func (r *RandomRoamer) Roam(Position) Direction {
	return Direction(r.rng.Intn(NumDirections))
}
