package model

import "errors"

// Common errors used across the application
var (
	// Progression errors
	ErrInsufficientFunds   = errors.New("insufficient currency")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUnknownItem         = errors.New("unknown shop item")
	ErrAlreadyOwned        = errors.New("item is already owned")
	ErrNotOwned            = errors.New("item is not owned")
	ErrUnknownSetting      = errors.New("unknown setting")
	ErrInvalidSettingValue = errors.New("invalid setting value")
	ErrEmptyNickname       = errors.New("nickname must not be empty")

	// Game errors
	ErrUnknownGame  = errors.New("unknown game")
	ErrNoActiveGame = errors.New("no game is running")

	// Arena errors
	ErrRoomNotFound = errors.New("room not found")
	ErrNotInRoom    = errors.New("not connected to a room")
	ErrEmptyMessage = errors.New("message must not be empty")
)
