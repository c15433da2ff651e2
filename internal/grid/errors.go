package grid

import "errors"

var (
	ErrDimensions     = errors.New("grid dimensions out of range")
	ErrNonRectangular = errors.New("weight rows differ in length")
	ErrOutOfBounds    = errors.New("coord out of bounds")
	ErrBadWeight      = errors.New("invalid weight")
	ErrUnknownColor   = errors.New("unknown colour")
	ErrProtectedCell  = errors.New("cannot paint over start or end")
	ErrStartIsEnd     = errors.New("start and end must differ")
	ErrMalformedKey   = errors.New("malformed vertex key")
)
