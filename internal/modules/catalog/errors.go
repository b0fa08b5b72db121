package catalog

import "errors"

var (
	ErrCategoryNameTaken = errors.New("category name already in use")
	ErrSerialNumberTaken = errors.New("serial number already in use")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryInactive  = errors.New("category is inactive")
)

// FieldErrors carries structured field-level validation problems to the
// handler.
type FieldErrors map[string]string

func (f FieldErrors) Error() string { return "validation failed" }
