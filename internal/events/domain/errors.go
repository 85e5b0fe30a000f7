package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event data")
	ErrInvalidStatus = errors.New("invalid participant status")
)
