package video

import (
	"bitwise74/game-clips/app/view"
	"bitwise74/game-clips/internal"
	"bitwise74/game-clips/internal/service"
	"bitwise74/game-clips/pkg/middleware"
	"bitwise74/game-clips/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type uploadBody struct {
	VideoURL string `form:"videoURL"`
	Game     string `form:"game"`
}

// VideoUpload stores a link to a video for the logged in user. Only the link
// is kept, the video itself stays wherever it's hosted
func VideoUpload(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	id, _ := middleware.CurrentIdentity(c)

	if c.Request.Method != http.MethodPost {
		renderUpload(c, d, http.StatusOK, gin.H{})
		return
	}

	var data uploadBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		renderUpload(c, d, http.StatusBadRequest, gin.H{"Error": "Invalid form submitted"})
		return
	}

	link, linkErr := validators.LinkValidator(data.VideoURL)
	gameTag, gameErr := validators.GameTagValidator(data.Game)

	if errs := view.FieldErrors(linkErr, gameErr); len(errs) > 0 {
		renderUpload(c, d, http.StatusBadRequest, gin.H{
			"VideoURL": data.VideoURL,
			"Errors":   errs,
		})
		return
	}

	form := gin.H{"VideoURL": link}
	if gameTag != nil {
		form["Game"] = *gameTag
	}

	videoID, err := service.SubmitVideo(d.DB, id.UserID, link, gameTag)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateLink):
			form["Errors"] = map[string]string{"videoURL": "This video has already been uploaded"}
			renderUpload(c, d, http.StatusConflict, form)
		case errors.Is(err, service.ErrUnknownGameTag):
			zap.L().Warn("Upload referenced an unknown game",
				zap.Uintp("game", gameTag),
				zap.Uint("userID", id.UserID),
				zap.String("requestID", requestID))

			form["Errors"] = map[string]string{"game": validators.ErrGameInvalid.Msg}
			delete(form, "Game")
			renderUpload(c, d, http.StatusBadRequest, form)
		default:
			view.Fail(c, http.StatusInternalServerError, "Failed to create video", err)
		}
		return
	}

	zap.L().Debug("Video submitted", zap.Uint("videoID", videoID), zap.Uint("userID", id.UserID), zap.String("requestID", requestID))

	c.Redirect(http.StatusFound, "/dashboard")
}

func renderUpload(c *gin.Context, d *internal.Deps, status int, data gin.H) {
	games, err := service.ListGames(d.DB)
	if err != nil {
		view.Fail(c, http.StatusInternalServerError, "Failed to list games", err)
		return
	}

	data["Games"] = games
	if _, ok := data["Game"]; !ok {
		data["Game"] = uint(0)
	}

	view.Render(c, status, "upload.html", "Upload", data)
}
