package model

import "errors"

var (
	// ErrInvalidDimension is returned when a container or item has a side
	// that is not finite or not greater than Epsilon. It aborts the whole run.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidRotation is returned for a rotation outside the six
	// supported orientations.
	ErrInvalidRotation = errors.New("invalid rotation")

	// ErrInvalidWeight is returned for a negative or non-finite weight.
	ErrInvalidWeight = errors.New("invalid weight")

	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)
