package user

import (
	"bitwise74/game-clips/app/view"
	"bitwise74/game-clips/internal"
	"bitwise74/game-clips/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	if c.Request.Method != http.MethodPost {
		data := gin.H{}
		if c.Query("registered") != "" {
			data["Notice"] = "Account created, you can log in now"
		}

		view.Render(c, http.StatusOK, "login.html", "Log in", data)
		return
	}

	requestID := c.GetString("requestID")

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		view.Render(c, http.StatusBadRequest, "login.html", "Log in", gin.H{
			"Error": "Invalid form submitted",
		})
		return
	}

	if data.Username == "" || data.Password == "" {
		view.Render(c, http.StatusBadRequest, "login.html", "Log in", gin.H{
			"Username": data.Username,
			"Error":    "Username and password can't be empty",
		})
		return
	}

	user, err := service.Authenticate(d.DB, d.Argon, data.Username, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			view.Render(c, http.StatusUnauthorized, "login.html", "Log in", gin.H{
				"Username": data.Username,
				"Error":    "Invalid username or password",
			})
			return
		}

		view.Fail(c, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	token, err := d.Sessions.Issue(user.ID, user.Username)
	if err != nil {
		view.Fail(c, http.StatusInternalServerError, "Failed to issue session token", err)
		return
	}

	http.SetCookie(c.Writer, d.Sessions.Cookie(token))
	c.Redirect(http.StatusFound, "/dashboard")
}
