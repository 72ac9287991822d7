package service

import (
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/pkg/security"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrphanUsername is shown instead of the uploader's name when a video points
// at a user that doesn't exist anymore
const OrphanUsername = "[deleted user]"

// DisplayRow is one line of the dashboard. It isn't stored anywhere
type DisplayRow struct {
	Link     string
	Username string
	GameTag  *uint
	GameIcon string
	Orphan   bool
}

type Dashboard struct {
	ViewerID       uint
	ViewerUsername string
	Rows           []DisplayRow
}

// BuildDashboard lists every video with its uploader and game. Whole video
// rows are read once and users and games are resolved with one batch query
// each, so every field of a row comes from the same video.
func BuildDashboard(db *gorm.DB, viewer security.Identity) (*Dashboard, error) {
	var videos []model.Video

	if err := db.Order("id").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to load videos, %w", err)
	}

	d := &Dashboard{
		ViewerID:       viewer.UserID,
		ViewerUsername: viewer.Username,
		Rows:           make([]DisplayRow, 0, len(videos)),
	}

	if len(videos) == 0 {
		return d, nil
	}

	userIDs := make([]uint, 0, len(videos))
	gameIDs := make([]uint, 0)
	seenUsers := make(map[uint]struct{})
	seenGames := make(map[uint]struct{})

	for _, v := range videos {
		if _, ok := seenUsers[v.UsersID]; !ok {
			seenUsers[v.UsersID] = struct{}{}
			userIDs = append(userIDs, v.UsersID)
		}

		if v.GameTag == nil {
			continue
		}

		if _, ok := seenGames[*v.GameTag]; !ok {
			seenGames[*v.GameTag] = struct{}{}
			gameIDs = append(gameIDs, *v.GameTag)
		}
	}

	usernames, err := usernamesByID(db, userIDs)
	if err != nil {
		return nil, err
	}

	icons, err := gameIconsByID(db, gameIDs)
	if err != nil {
		return nil, err
	}

	for _, v := range videos {
		row := DisplayRow{
			Link:    v.Link,
			GameTag: v.GameTag,
		}

		if name, ok := usernames[v.UsersID]; ok {
			row.Username = name
		} else {
			zap.L().Warn("Video has no uploader, showing placeholder",
				zap.Error(ErrOrphanVideoRow),
				zap.Uint("videoID", v.ID),
				zap.Uint("usersID", v.UsersID))

			row.Username = OrphanUsername
			row.Orphan = true
		}

		if v.GameTag != nil {
			// A tag without a game row keeps its raw ID and just has no icon
			row.GameIcon = icons[*v.GameTag]
		}

		d.Rows = append(d.Rows, row)
	}

	return d, nil
}

func usernamesByID(db *gorm.DB, ids []uint) (map[uint]string, error) {
	var users []model.User

	err := db.Select("id", "username").
		Where("id IN ?", ids).
		Find(&users).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploaders, %w", err)
	}

	out := make(map[uint]string, len(users))
	for _, u := range users {
		out[u.ID] = u.Username
	}

	return out, nil
}

func gameIconsByID(db *gorm.DB, ids []uint) (map[uint]string, error) {
	out := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var games []model.Game

	if err := db.Where("id IN ?", ids).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve games, %w", err)
	}

	for _, g := range games {
		out[g.ID] = g.Icons
	}

	return out, nil
}
