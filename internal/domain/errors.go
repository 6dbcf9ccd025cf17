package domain

import "errors"

// Domain errors
var (
	ErrRowNotFound      = errors.New("ledger row not found")
	ErrInvalidAmount    = errors.New("amount must be a non-zero number")
	ErrInvalidEntryType = errors.New("invalid entry type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidInput     = errors.New("invalid input")
)
