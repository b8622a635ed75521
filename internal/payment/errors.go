package payment

import "errors"

var (
	ErrAlreadyPaid        = errors.New("order already has a payment")
	ErrNotServedYet       = errors.New("only served orders can be paid")
	ErrInvalidOrderTotal  = errors.New("order total is not a positive amount")
	ErrInsufficientAmount = errors.New("amount received is less than the order total")
)
