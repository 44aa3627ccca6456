package repository

import "errors"

// Sentinel kinds for roster store errors.
var (
	ErrNotFound   = errors.New("row not found")
	ErrRosterFull = errors.New("roster is full")
)
