package reservation

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrBooked           = errors.New("room is booked")
	ErrNotBooked        = errors.New("room is not booked")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrFeeNotConfigured = errors.New("holding fee is not configured")
)
