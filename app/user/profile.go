package user

import (
	"bitwise74/game-clips/app/view"
	"bitwise74/game-clips/internal"
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/internal/service"
	"bitwise74/game-clips/pkg/middleware"
	"bitwise74/game-clips/pkg/validators"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type profileBody struct {
	Bio      string `form:"bio"`
	Email    string `form:"email"`
	Number   string `form:"number"`
	GamerTag string `form:"tag"`
}

func UserProfile(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	id, _ := middleware.CurrentIdentity(c)

	if c.Request.Method != http.MethodPost {
		p, err := service.GetProfile(d.DB, id.UserID)
		if err != nil {
			profileFail(c, err)
			return
		}

		view.Render(c, http.StatusOK, "profile.html", "Profile", gin.H{
			"Form": fieldsOf(p),
		})
		return
	}

	var data profileBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		view.Render(c, http.StatusBadRequest, "profile.html", "Profile", gin.H{
			"Form":  service.ProfileFields{},
			"Error": "Invalid form submitted",
		})
		return
	}

	f := service.ProfileFields{
		Bio:         strings.TrimSpace(data.Bio),
		Email:       strings.TrimSpace(data.Email),
		PhoneNumber: strings.TrimSpace(data.Number),
		GamerTag:    strings.TrimSpace(data.GamerTag),
	}

	errs := view.FieldErrors(
		validators.BioValidator(f.Bio),
		validators.EmailValidator(f.Email),
		validators.PhoneValidator(f.PhoneNumber),
		validators.GamerTagValidator(f.GamerTag),
	)
	if len(errs) > 0 {
		view.Render(c, http.StatusBadRequest, "profile.html", "Profile", gin.H{
			"Form":   f,
			"Errors": errs,
		})
		return
	}

	if err := service.UpdateProfile(d.DB, id.UserID, f); err != nil {
		if errors.Is(err, service.ErrContactInUse) {
			view.Render(c, http.StatusConflict, "profile.html", "Profile", gin.H{
				"Form":  f,
				"Error": "That email or phone number is already used by another account",
			})
			return
		}

		profileFail(c, err)
		return
	}

	view.Render(c, http.StatusOK, "profile.html", "Profile", gin.H{
		"Form":   f,
		"Notice": "Profile saved",
	})
}

// A user without a profile breaks the one profile per user rule, it's logged
// as an error instead of being papered over
func profileFail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProfileNotFound) {
		id, _ := middleware.CurrentIdentity(c)
		zap.L().Error("User has no profile", zap.Uint("userID", id.UserID), zap.String("requestID", c.GetString("requestID")))

		view.Fail(c, http.StatusNotFound, "Profile not found", nil)
		return
	}

	view.Fail(c, http.StatusInternalServerError, "Failed to load profile", err)
}

func fieldsOf(p *model.Profile) service.ProfileFields {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	return service.ProfileFields{
		Bio:         deref(p.Bio),
		Email:       deref(p.Email),
		PhoneNumber: deref(p.PhoneNumber),
		GamerTag:    deref(p.GamerTag),
	}
}
