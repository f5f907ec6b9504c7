package repository

import "errors"

// Sentinel errors surfaced by the repositories. Handlers translate these
// into HTTP statuses with errors.Is; everything else is an internal error.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateNickname = errors.New("nickname already exists")
)
