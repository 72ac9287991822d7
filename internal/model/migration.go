package model

import "time"

// Migration records one-off data steps (like seeding games) so they only
// run once per database
type Migration struct {
	ID        int       `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// All returns every model that has to exist before the app can serve requests
func All() []any {
	return []any{&User{}, &Game{}, &Profile{}, &Video{}, &Migration{}}
}
