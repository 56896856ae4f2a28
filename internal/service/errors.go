package service

import "errors"

var (
	// ErrNotFound covers both missing and foreign records; ownership checks
	// deliberately do not reveal whether an id exists for another user.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidToken       = errors.New("invalid token")
)
