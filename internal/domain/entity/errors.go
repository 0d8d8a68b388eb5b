package entity

import "errors"

var (
	// Conversation errors
	ErrInvalidConversationID   = errors.New("invalid conversation id")
	ErrInvalidOwnerID          = errors.New("invalid owner id")
	ErrInvalidConversationType = errors.New("invalid conversation type")

	// Message errors
	ErrInvalidMessageID = errors.New("invalid message id")
	ErrInvalidRole      = errors.New("invalid message role")
	ErrEmptyContent     = errors.New("empty message content")

	// Profile errors
	ErrInvalidProfileOwner = errors.New("invalid profile owner id")

	// Task errors
	ErrInvalidTaskID   = errors.New("invalid task id")
	ErrInvalidTaskType = errors.New("invalid task type")

	// Wellness errors
	ErrScoreOutOfRange = errors.New("wellness score out of range")
)
