package model

import "time"

type Video struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	Link    string `gorm:"uniqueIndex;not null"`
	UsersID uint   `gorm:"index;not null"`
	GameTag *uint  `gorm:"index"`

	CreatedAt time.Time
}
