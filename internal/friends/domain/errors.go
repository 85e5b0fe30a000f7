package domain

import "errors"

var (
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrRequestExists  = errors.New("friend request already pending")
	ErrAlreadyFriends = errors.New("users are already friends")
	ErrNoRequest      = errors.New("no pending friend request")
	ErrUserNotFound   = errors.New("user not found")
)
