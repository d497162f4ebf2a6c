package apperror

import "errors"

var (
	ErrPlayerOutOfRange = errors.New("player index out of range")
	ErrRoundOutOfRange  = errors.New("round index out of range")
	ErrEmptyPlayerName  = errors.New("player name must not be empty")
)
