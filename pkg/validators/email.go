package validators

import "net/mail"

var ErrEmailInvalid = fieldErr("email", "invalid email address provided")

// EmailValidator only rejects malformed addresses. An empty email is valid
// because every profile field is optional
func EmailValidator(e string) error {
	if e == "" {
		return nil
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}
