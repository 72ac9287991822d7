package service

import (
	"bitwise74/game-clips/internal/model"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// SubmitVideo stores a link for the given user. The link is taken as is, its
// shape isn't checked. gameTag may be nil for untagged videos
func SubmitVideo(db *gorm.DB, userID uint, link string, gameTag *uint) (uint, error) {
	v := model.Video{
		Link:    link,
		UsersID: userID,
		GameTag: gameTag,
	}

	if err := db.Create(&v).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return 0, ErrDuplicateLink
		case errors.Is(err, gorm.ErrForeignKeyViolated) && gameTag != nil:
			// Both users_id and game_tag are foreign keys, only blame the
			// game when it really is missing
			if missing, lookupErr := gameMissing(db, *gameTag); lookupErr == nil && missing {
				return 0, ErrUnknownGameTag
			}
		}

		return 0, fmt.Errorf("failed to create video, %w", err)
	}

	return v.ID, nil
}

func gameMissing(db *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := db.Model(&model.Game{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}

	return n == 0, nil
}

// ListGames returns every game ordered by ID, used to fill the upload form
func ListGames(db *gorm.DB) ([]model.Game, error) {
	var games []model.Game

	if err := db.Order("id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to list games, %w", err)
	}

	return games, nil
}
