package db

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrUserExists     = errors.New("user already exists")
	ErrItemExists     = errors.New("item already exists")
	ErrDeliveryExists = errors.New("delivery number already exists")
	ErrCheckoutExists = errors.New("checkout number already exists")
	ErrUnknownItem    = errors.New("movement references an unknown item")
)
