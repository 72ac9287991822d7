package validators

import (
	"strconv"
	"strings"
)

const maxLinkLen = 2048

var (
	ErrLinkEmpty   = fieldErr("videoURL", "no video link provided")
	ErrLinkTooLong = fieldErr("videoURL", "video link is too long")
	ErrGameInvalid = fieldErr("game", "invalid game selected")
)

// LinkValidator doesn't check that the link is a well formed URL, anything
// non-empty is accepted. Returns the trimmed link
func LinkValidator(l string) (string, error) {
	l = strings.TrimSpace(l)
	if l == "" {
		return "", ErrLinkEmpty
	}

	if len(l) > maxLinkLen {
		return "", ErrLinkTooLong
	}

	return l, nil
}

// GameTagValidator parses the optional game field of the upload form. An empty
// value means the video isn't tagged
func GameTagValidator(g string) (*uint, error) {
	g = strings.TrimSpace(g)
	if g == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(g, 10, 32)
	if err != nil || id == 0 {
		return nil, ErrGameInvalid
	}

	tag := uint(id)
	return &tag, nil
}
