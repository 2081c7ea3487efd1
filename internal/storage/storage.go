package storage

import "errors"

var (
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrVenueNotFound     = errors.New("venue not found")
	ErrDashboardNotFound = errors.New("dashboard cache miss")
)
