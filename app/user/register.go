package user

import (
	"bitwise74/game-clips/app/view"
	"bitwise74/game-clips/internal"
	"bitwise74/game-clips/internal/service"
	"bitwise74/game-clips/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	if c.Request.Method != http.MethodPost {
		view.Render(c, http.StatusOK, "register.html", "Register", nil)
		return
	}

	requestID := c.GetString("requestID")

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		view.Render(c, http.StatusBadRequest, "register.html", "Register", gin.H{
			"Error": "Invalid form submitted",
		})
		return
	}

	errs := view.FieldErrors(
		validators.UsernameValidator(data.Username),
		validators.PasswordValidator(data.Password),
	)
	if len(errs) > 0 {
		zap.L().Debug("Invalid registration form", zap.Any("errors", errs), zap.String("requestID", requestID))

		view.Render(c, http.StatusBadRequest, "register.html", "Register", gin.H{
			"Username": data.Username,
			"Errors":   errs,
		})
		return
	}

	taken, err := service.UsernameTaken(d.DB, data.Username)
	if err != nil {
		view.Fail(c, http.StatusInternalServerError, "Failed to check if user is registered", err)
		return
	}

	if taken {
		renderTaken(c, data.Username)
		return
	}

	hash, err := d.Argon.Hash(data.Password)
	if err != nil {
		view.Fail(c, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}

	userID, err := service.RegisterUser(d.DB, data.Username, hash)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			renderTaken(c, data.Username)
			return
		}

		view.Fail(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	zap.L().Info("User registered", zap.Uint("userID", userID), zap.String("requestID", requestID))

	c.Redirect(http.StatusFound, "/login?registered=1")
}

func renderTaken(c *gin.Context, username string) {
	view.Render(c, http.StatusConflict, "register.html", "Register", gin.H{
		"Username": username,
		"Errors": map[string]string{
			"username": "This username is already taken. Please log in or pick a different one",
		},
	})
}
