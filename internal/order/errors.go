package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidOrder      = errors.New("invalid order payload")
)
