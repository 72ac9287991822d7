package security

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SessionCookie = "session"

var ErrSessionInvalid = errors.New("session token invalid")

// Identity is who a request is acting as. It only references the user by ID,
// the user row itself is loaded by whoever needs it
type Identity struct {
	UserID    uint
	Username  string
	SessionID string
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and parses the signed session tokens kept in the
// session cookie
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Issue returns a signed token for the given user
func (s *Sessions) Issue(userID uint, username string) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token, %w", err)
	}

	return signed, nil
}

// Parse validates the signature and expiry of a token and returns the
// identity it carries
func (s *Sessions) Parse(token string) (*Identity, error) {
	var claims sessionClaims

	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrSessionInvalid, err)
	}

	if !t.Valid {
		return nil, ErrSessionInvalid
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrSessionInvalid
	}

	return &Identity{
		UserID:    uint(id),
		Username:  claims.Username,
		SessionID: claims.ID,
	}, nil
}

// Cookie builds the session cookie for a freshly issued token
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie overwrites the session cookie so the browser drops it
func (s *Sessions) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
