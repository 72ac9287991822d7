package user

import (
	"bitwise74/game-clips/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserLogout drops the session cookie. Tokens are stateless so a copied token
// stays valid until it expires
func UserLogout(c *gin.Context, d *internal.Deps) {
	http.SetCookie(c.Writer, d.Sessions.ExpiredCookie())
	c.Redirect(http.StatusFound, "/login")
}
