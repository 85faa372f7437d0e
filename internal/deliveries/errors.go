package deliveries

import "errors"

// Delivery lifecycle errors. The messages are part of the API contract.
var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrAlreadyDelivered = errors.New("this order has already been delivered")
	ErrNotShipped       = errors.New("change status to shipped")
	ErrNotOwner         = errors.New("the user can only view their deliveries")
	ErrInvalidStatus    = errors.New("invalid delivery status")
)
