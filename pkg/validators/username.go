package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minUsernameLen = 4
	maxUsernameLen = 20
)

var (
	ErrUsernameEmpty    = fieldErr("username", "no username provided")
	ErrUsernameTooShort = fieldErr("username", "username must be at least 4 characters long")
	ErrUsernameTooLong  = fieldErr("username", "username can't be longer than 20 characters")
	ErrUsernameInvalid  = fieldErr("username", "username can't contain spaces or control characters")
)

// UsernameValidator checks the length in runes, not bytes, since the column
// is sized in characters
func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	n := utf8.RuneCountInString(u)
	if n < minUsernameLen {
		return ErrUsernameTooShort
	}

	if n > maxUsernameLen {
		return ErrUsernameTooLong
	}

	if strings.IndexFunc(u, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return ErrUsernameInvalid
	}

	return nil
}
