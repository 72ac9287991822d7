package middleware

import (
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/internal/service"
	"bitwise74/game-clips/pkg/security"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const identityKey = "identity"

// NewSessionMiddleware guards routes that need a logged in user. Requests
// without a valid session never reach the handler and are sent to /login
func NewSessionMiddleware(d *gorm.DB, s *security.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		token, err := c.Cookie(security.SessionCookie)
		if err != nil || token == "" {
			toLogin(c, s, service.ErrAuthenticationRequired)
			return
		}

		id, err := s.Parse(token)
		if err != nil {
			toLogin(c, s, fmt.Errorf("%w, %w", service.ErrAuthenticationRequired, err))
			return
		}

		// The token may outlive the user it was issued for
		var user model.User
		err = d.Select("id", "username").Where("id = ?", id.UserID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				toLogin(c, s, fmt.Errorf("%w, session user %d is gone", service.ErrAuthenticationRequired, id.UserID))
				return
			}

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		id.Username = user.Username

		c.Set(identityKey, *id)
		c.Set("userID", strconv.FormatUint(uint64(id.UserID), 10))
		c.Next()
	}
}

// CurrentIdentity returns the identity set by the session middleware
func CurrentIdentity(c *gin.Context) (security.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return security.Identity{}, false
	}

	id, ok := v.(security.Identity)
	return id, ok
}

func toLogin(c *gin.Context, s *security.Sessions, reason error) {
	zap.L().Debug("Redirecting to login", zap.Error(reason), zap.String("requestID", c.GetString("requestID")))

	http.SetCookie(c.Writer, s.ExpiredCookie())
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
