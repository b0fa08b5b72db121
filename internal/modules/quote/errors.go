package quote

import "errors"

var (
	ErrQuoteNotEditable   = errors.New("quote is no longer editable")
	ErrQuoteEmpty         = errors.New("quote has no items")
	ErrQuoteNotCancelable = errors.New("quote cannot be cancelled in its current status")
	ErrDuplicateEquipment = errors.New("equipment is already in this quote")
	ErrTierUnavailable    = errors.New("equipment has no price for the requested tier")
	ErrNotRentable        = errors.New("equipment is not available for rental")
	ErrInsufficientStock  = errors.New("requested quantity exceeds available stock")
	ErrPastUseDate        = errors.New("use date must be in the future")
	ErrItemNotFound       = errors.New("quote item not found")
)
