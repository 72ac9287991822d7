package validators

import "unicode/utf8"

const (
	minPasswordLen = 8
	maxPasswordLen = 20
)

var (
	ErrPasswordEmpty    = fieldErr("password", "no password provided")
	ErrPasswordTooShort = fieldErr("password", "password must be at least 8 characters long")
	ErrPasswordTooLong  = fieldErr("password", "password can't be longer than 20 characters")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	n := utf8.RuneCountInString(p)
	if n < minPasswordLen {
		return ErrPasswordTooShort
	}

	if n > maxPasswordLen {
		return ErrPasswordTooLong
	}

	return nil
}
