package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrReserved   = errors.New("room is currently reserved")
)
