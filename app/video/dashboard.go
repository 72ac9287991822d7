package video

import (
	"bitwise74/game-clips/app/view"
	"bitwise74/game-clips/internal"
	"bitwise74/game-clips/internal/service"
	"bitwise74/game-clips/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard lists every uploaded video, newest last
func Dashboard(c *gin.Context, d *internal.Deps) {
	id, _ := middleware.CurrentIdentity(c)

	dash, err := service.BuildDashboard(d.DB, id)
	if err != nil {
		view.Fail(c, http.StatusInternalServerError, "Failed to build dashboard", err)
		return
	}

	view.Render(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"Dashboard": dash,
	})
}
