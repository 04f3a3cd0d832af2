package game

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when a move is not in the legal set of the
	// position it is applied to.
	ErrIllegalMove = errors.New("illegal move")

	// ErrUnknownAction is returned when an action index cannot be mapped to a
	// legal move of the position.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidFEN is returned for malformed FEN strings.
	ErrInvalidFEN = errors.New("invalid FEN")
)
