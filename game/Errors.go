package game

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrEpisodeOver   = errors.New("episode is over")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrOutOfBounds   = errors.New("position out of bounds")
)

// Error records a failed game operation
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidAction returns whether err was caused by an action outside
// the five valid actions
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// IsEpisodeOver returns whether err was caused by stepping a finished
// episode
func IsEpisodeOver(err error) bool {
	return errors.Is(err, ErrEpisodeOver)
}
