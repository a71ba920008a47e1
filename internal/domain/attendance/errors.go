package attendance

import "errors"

var (
	ErrFactNotFound    = errors.New("attendance fact not found")
	ErrInvalidDateSpan = errors.New("period end must not precede period start")
)
