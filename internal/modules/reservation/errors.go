package reservation

import "errors"

var (
	ErrNoItems           = errors.New("reservation needs at least one item")
	ErrTierUnavailable   = errors.New("equipment has no price for the requested tier")
	ErrNotRentable       = errors.New("equipment is not available for rental")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	ErrPastUseDate       = errors.New("use date must be in the future")
)
