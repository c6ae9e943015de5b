package domain

import "errors"

// ErrInvalidInput is returned when a trade request cannot be computed.
var ErrInvalidInput = errors.New("invalid input")
