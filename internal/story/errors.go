package story

import "errors"

var (
	// ErrInvalidChoice is returned when a choice is not offered by the current
	// scene. The state is left untouched and nothing is rolled or logged.
	ErrInvalidChoice = errors.New("story: invalid choice")

	// ErrInvalidTransition is returned for any operation other than a restart
	// on a terminal scene.
	ErrInvalidTransition = errors.New("story: invalid transition")
)
