package routing

import "errors"

var (
	ErrUnknownStation   = errors.New("unknown station")
	ErrDuplicateStation = errors.New("duplicate station")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrEmptyCode        = errors.New("empty station code")
	ErrFrozen           = errors.New("network is frozen")
)
