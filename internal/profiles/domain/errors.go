package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrProfileExists   = errors.New("user profile already exists")
	ErrInvalidProfile  = errors.New("invalid profile data")
)
