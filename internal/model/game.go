package model

// Game is reference data seeded at startup. Icons identifies the game and is
// what the dashboard shows next to a video.
type Game struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"`
	Icons string `gorm:"uniqueIndex;not null"`

	Videos []Video `gorm:"foreignKey:GameTag"`
}
