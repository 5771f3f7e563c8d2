package seats

import (
	"errors"
)

var (
	ErrAlreadyOccupied = errors.New("seat is already occupied")
	ErrAlreadyHasSeat  = errors.New("identity already holds a seat in this room")
	ErrBanned          = errors.New("identity is banned from seats in this room")
	ErrInvalidIndex    = errors.New("seat index out of range")
	ErrNotOccupant     = errors.New("seat is held by another identity")
	ErrBanNotFound     = errors.New("seat ban not found")
	ErrEmptyIdentity   = errors.New("identity is required")
	ErrStoreVersion    = errors.New("seat store was written by a newer version")
)
