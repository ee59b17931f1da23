package domain

import "errors"

var (
	// ErrInvalidWeekday rejects a day name outside the recognized seven.
	ErrInvalidWeekday = errors.New("invalid weekday name")

	// ErrInvalidTime rejects an hour string that is not a valid HH:MM time.
	ErrInvalidTime = errors.New("invalid hour, want HH:MM")

	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
