package mines

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid game params")
	ErrInvalidCoordinate = errors.New("invalid cell coordinates")
)
