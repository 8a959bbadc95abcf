package service

import "errors"

var (
	// ErrNameTooLong is returned when a project name exceeds 256 characters.
	ErrNameTooLong = errors.New("project name is longer than 256 characters")
	// ErrNameEmpty is returned when a project name is empty.
	ErrNameEmpty = errors.New("project name is empty")
	// ErrTitleTooLong is returned when a unit title exceeds 256 characters.
	ErrTitleTooLong = errors.New("unit title is longer than 256 characters")
	// ErrNegativeSq is returned when a source or record carries a negative sequence number.
	ErrNegativeSq = errors.New("sequence numbers start at 0")
	// ErrDuplicateSq is returned when a payload repeats a sequence number.
	ErrDuplicateSq = errors.New("duplicate sequence number in payload")
	// ErrWrongPassword is returned when the name or password does not match.
	ErrWrongPassword = errors.New("wrong user name or password")
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotAdmin is returned when a non-admin attempts an admin operation.
	ErrNotAdmin = errors.New("operation requires an admin user")
)
