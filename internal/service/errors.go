package service

import "errors"

var (
	ErrDuplicateUsername      = errors.New("username is already taken")
	ErrDuplicateLink          = errors.New("this video has already been submitted")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrProfileExists          = errors.New("user already has a profile")
	ErrContactInUse           = errors.New("email or phone number is already used by another profile")
	ErrOrphanVideoRow         = errors.New("video uploader does not exist")
	ErrUnknownGameTag         = errors.New("unknown game")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid username or password")
)
