package root

import (
	"bitwise74/game-clips/app/view"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Index(c *gin.Context) {
	view.Render(c, http.StatusOK, "index.html", "Welcome", nil)
}
