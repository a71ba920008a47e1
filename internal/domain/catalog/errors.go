package catalog

import "errors"

var (
	ErrComponentNotFound   = errors.New("pay component not found")
	ErrComponentCodeExists = errors.New("pay component code already exists")
	ErrCodeImmutable       = errors.New("pay component code cannot be changed")
	ErrInvalidType         = errors.New("invalid pay component type")
	ErrInvalidCalcMethod   = errors.New("invalid calculation method")
)
