package middleware

import (
	"bitwise74/game-clips/db"
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/pkg/security"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.New(db.Options{Driver: "sqlite", DSN: ":memory:?_foreign_keys=on", MaxOpenConns: 1})
	require.NoError(t, err)

	t.Cleanup(func() { db.Close(gdb) })
	return gdb
}

func guardedRouter(gdb *gorm.DB, s *security.Sessions, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/dashboard", NewSessionMiddleware(gdb, s), func(c *gin.Context) {
		*reached = true

		id, ok := CurrentIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}

		c.String(http.StatusOK, id.Username)
	})

	return r
}

func TestSessionMiddlewareRedirects(t *testing.T) {
	gdb := newTestDB(t)
	s := security.NewSessions("test-secret", time.Hour, false)

	orphanToken, err := s.Issue(999, "ghost")
	require.NoError(t, err)

	foreignToken, err := security.NewSessions("other", time.Hour, false).Issue(1, "alice")
	require.NoError(t, err)

	tests := map[string]string{
		"no cookie":    "",
		"garbage":      "garbage",
		"wrong secret": foreignToken,
		"deleted user": orphanToken,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			defer zap.ReplaceGlobals(zap.New(core))()

			var reached bool
			r := guardedRouter(gdb, s, &reached)

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if token != "" {
				req.AddCookie(&http.Cookie{Name: security.SessionCookie, Value: token})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.False(t, reached)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))

			redirects := logs.FilterMessage("Redirecting to login").All()
			require.Len(t, redirects, 1)
			assert.Contains(t, redirects[0].ContextMap()["error"], "authentication required")
		})
	}
}

func TestSessionMiddlewareAllows(t *testing.T) {
	gdb := newTestDB(t)
	s := security.NewSessions("test-secret", time.Hour, false)

	user := model.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&user).Error)

	// Username comes from the database, not from the token
	token, err := s.Issue(user.ID, "stale-name")
	require.NoError(t, err)

	var reached bool
	r := guardedRouter(gdb, s, &reached)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(s.Cookie(token))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1})
	t.Cleanup(rl.Close)

	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/", BodySizeLimiter(16), func(c *gin.Context) {
		c.String(http.StatusOK, c.PostForm("a"))
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a="+strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=ok"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
