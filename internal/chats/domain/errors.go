package domain

import "errors"

var (
	ErrChatNotFound   = errors.New("chat not found")
	ErrNotParticipant = errors.New("sender is not a chat participant")
	ErrEmptyMessage   = errors.New("message text must not be empty")
)
