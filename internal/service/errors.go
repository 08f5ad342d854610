package service

import (
	"errors"
)

// User-correctable errors. Handlers map these to 4xx responses;
// anything else coming out of a service is a store failure and
// surfaces as a 500 with a generic message.
var (
	ErrInvalidQuery        = errors.New("please write something to search")
	ErrUnknownCategory     = errors.New("invalid category")
	ErrInvalidAvailability = errors.New("availability required")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("username or email already exists")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already in use")
	ErrWrongPassword       = errors.New("the password does not match")
	ErrSamePassword        = errors.New("new password must be different from old password")
	ErrAlreadyProfessional = errors.New("already a professional")
	ErrMissingFields       = errors.New("required fields are missing")
)
