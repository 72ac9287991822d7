package model

// Profile is created together with its User and only ever addressed through
// the owning user's ID. Unset fields are stored as NULL so the unique indexes
// only apply to values that are actually present.
type Profile struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Bio         *string
	Email       *string `gorm:"uniqueIndex"`
	PhoneNumber *string `gorm:"uniqueIndex"`
	GamerTag    *string
	UserID      uint    `gorm:"uniqueIndex;not null"`
}
