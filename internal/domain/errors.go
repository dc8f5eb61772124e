package domain

import "errors"

var (
	// ErrPlayerNotFound is returned when an action targets a player that is not connected.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerExists is returned when a player id is already connected.
	ErrPlayerExists = errors.New("player already connected")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidBank indicates a loaded question bank failed validation.
	ErrInvalidBank = errors.New("invalid question bank")
)
