package validators

import "unicode/utf8"

const (
	maxBioLen      = 500
	maxGamerTagLen = 32
	maxPhoneLen    = 20
)

var (
	ErrBioTooLong      = fieldErr("bio", "bio can't be longer than 500 characters")
	ErrGamerTagTooLong = fieldErr("tag", "gamer tag can't be longer than 32 characters")
	ErrPhoneInvalid    = fieldErr("number", "phone number may only contain digits, spaces and +-()")
	ErrPhoneTooLong    = fieldErr("number", "phone number can't be longer than 20 characters")
)

func BioValidator(b string) error {
	if utf8.RuneCountInString(b) > maxBioLen {
		return ErrBioTooLong
	}

	return nil
}

func GamerTagValidator(t string) error {
	if utf8.RuneCountInString(t) > maxGamerTagLen {
		return ErrGamerTagTooLong
	}

	return nil
}

func PhoneValidator(p string) error {
	if p == "" {
		return nil
	}

	if len(p) > maxPhoneLen {
		return ErrPhoneTooLong
	}

	for _, r := range p {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '+', r == '-', r == '(', r == ')':
		default:
			return ErrPhoneInvalid
		}
	}

	return nil
}
