package engine

import "errors"

var (
	// ErrInvalidComposition reports a roster that cannot satisfy the
	// requested pairing policy.
	ErrInvalidComposition = errors.New("invalid team composition")
	// ErrInvalidState reports an operation invoked outside its valid
	// lifecycle state.
	ErrInvalidState = errors.New("invalid lifecycle state")
	// ErrInvalidScore reports a negative score submission.
	ErrInvalidScore = errors.New("invalid score")
	// ErrUnknownGame reports a score for a game index not present in
	// the current round.
	ErrUnknownGame = errors.New("unknown game")
)
