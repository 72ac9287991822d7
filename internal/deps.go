package internal

import (
	"bitwise74/game-clips/pkg/security"

	"gorm.io/gorm"
)

// Deps is handed to every handler. It's built once at startup and torn down
// on shutdown, nothing in it is a package level global
type Deps struct {
	DB       *gorm.DB
	Argon    security.PasswordHasher
	Sessions *security.Sessions
}
