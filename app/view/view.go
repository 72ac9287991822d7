// Package view renders the HTML pages with the values every page expects
package view

import (
	"bitwise74/game-clips/pkg/middleware"
	"bitwise74/game-clips/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Render executes the named template. The layout needs a title, the viewer's
// username and the request ID, and forms need an error map, so those are
// always filled in
func Render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["Title"] = title
	data["RequestID"] = c.GetString("requestID")

	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}

	viewer := ""
	if id, ok := middleware.CurrentIdentity(c); ok {
		viewer = id.Username
	}
	data["Viewer"] = viewer

	c.HTML(status, name, data)
}

// Fail renders the error page. Internal errors are logged with the request ID
// so the user can report it and never see the error itself
func Fail(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		zap.L().Error(msg, zap.Error(err), zap.String("requestID", c.GetString("requestID")))
	}

	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}

	Render(c, status, "error.html", http.StatusText(status), gin.H{"Error": msg})
	c.Abort()
}

// FieldErrors maps validation errors to the form field they belong to
func FieldErrors(errs ...error) map[string]string {
	out := make(map[string]string)

	for _, err := range errs {
		var fe *validators.FieldError
		if errors.As(err, &fe) {
			if _, ok := out[fe.Field]; !ok {
				out[fe.Field] = fe.Msg
			}
		}
	}

	return out
}
