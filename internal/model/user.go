// Package model defines database models
package model

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null;size:20"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time

	Profile *Profile `gorm:"foreignKey:UserID"`
	Videos  []Video  `gorm:"foreignKey:UsersID"`
}
