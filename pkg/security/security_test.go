package security

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cheap parameters so the tests don't spend seconds hashing
func testHasher() *ArgonHash {
	return &ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestArgonHashRoundTrip(t *testing.T) {
	a := testHasher()

	encoded, err := a.Hash("password1")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$v=19$m=1024,t=1,p=1$")

	ok, err := a.Verify("password1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Verify("password2", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgonHashSalted(t *testing.T) {
	a := testHasher()

	h1, err := a.Hash("password1")
	require.NoError(t, err)
	h2, err := a.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestArgonVerifyUsesStoredParams(t *testing.T) {
	encoded, err := testHasher().Hash("password1")
	require.NoError(t, err)

	// Default settings must still verify a hash made with other settings
	ok, err := New().Verify("password1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgonVerifyRejectsGarbage(t *testing.T) {
	a := testHasher()

	for _, e := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$a2V5",
	} {
		_, err := a.Verify("password1", e)
		assert.ErrorIs(t, err, ErrInvalidHash, "input %q", e)
	}

	_, err := a.Verify("password1", "$argon2id$v=16$m=1,t=1,p=1$c2FsdA$a2V5")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestSessionsIssueParse(t *testing.T) {
	s := NewSessions("test-secret", time.Hour, false)

	token, err := s.Issue(42, "alice")
	require.NoError(t, err)

	id, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id.UserID)
	assert.Equal(t, "alice", id.Username)
	assert.NotEmpty(t, id.SessionID)
}

func TestSessionsRejectForeignSecret(t *testing.T) {
	token, err := NewSessions("secret-a", time.Hour, false).Issue(1, "alice")
	require.NoError(t, err)

	_, err = NewSessions("secret-b", time.Hour, false).Parse(token)
	assert.True(t, errors.Is(err, ErrSessionInvalid))
}

func TestSessionsRejectExpired(t *testing.T) {
	s := NewSessions("test-secret", -time.Minute, false)

	token, err := s.Issue(1, "alice")
	require.NoError(t, err)

	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionsRejectMalformed(t *testing.T) {
	_, err := NewSessions("test-secret", time.Hour, false).Parse("not.a.token")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionCookies(t *testing.T) {
	s := NewSessions("test-secret", time.Hour, true)

	c := s.Cookie("tok")
	assert.Equal(t, SessionCookie, c.Name)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	e := s.ExpiredCookie()
	assert.Equal(t, SessionCookie, e.Name)
	assert.Empty(t, e.Value)
	assert.Negative(t, e.MaxAge)
}
