// Package service holds the operations that read and change persistent state.
// Handlers call into it after authentication and form validation
package service

import (
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/pkg/security"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ProfileFields is the full set of user editable profile values. Empty
// strings are stored as NULL
type ProfileFields struct {
	Bio         string
	Email       string
	PhoneNumber string
	GamerTag    string
}

// UsernameTaken is the advisory check done before hashing a new password.
// Matching is case-sensitive. RegisterUser still handles the race where the
// name gets taken in between
func UsernameTaken(db *gorm.DB, username string) (bool, error) {
	var n int64

	err := db.Model(model.User{}).
		Where("username = ?", username).
		Count(&n).
		Error
	if err != nil {
		return false, fmt.Errorf("failed to check username, %w", err)
	}

	return n > 0, nil
}

// RegisterUser creates a user and its empty profile. Both rows are written in
// one transaction so a failure never leaves a user without a profile
func RegisterUser(db *gorm.DB, username, passwordHash string) (uint, error) {
	user := model.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUsername
			}

			return fmt.Errorf("failed to create user, %w", err)
		}

		_, err := CreateDefaultProfile(tx, user.ID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// CreateDefaultProfile inserts a profile with every optional field unset.
// The unique index on user_id rejects a second profile for the same user
func CreateDefaultProfile(db *gorm.DB, userID uint) (uint, error) {
	p := model.Profile{UserID: userID}

	if err := db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrProfileExists
		}

		return 0, fmt.Errorf("failed to create profile, %w", err)
	}

	return p.ID, nil
}

func GetProfile(db *gorm.DB, userID uint) (*model.Profile, error) {
	var p model.Profile

	err := db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, fmt.Errorf("failed to load profile, %w", err)
	}

	return &p, nil
}

// UpdateProfile overwrites all four fields of the user's own profile, there
// are no partial updates
func UpdateProfile(db *gorm.DB, userID uint, f ProfileFields) error {
	p, err := GetProfile(db, userID)
	if err != nil {
		return err
	}

	err = db.Model(p).
		Select("bio", "email", "phone_number", "gamer_tag").
		Updates(map[string]any{
			"bio":          nullable(f.Bio),
			"email":        nullable(f.Email),
			"phone_number": nullable(f.PhoneNumber),
			"gamer_tag":    nullable(f.GamerTag),
		}).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrContactInUse
		}

		return fmt.Errorf("failed to update profile, %w", err)
	}

	return nil
}

// Authenticate returns the user if the password matches. Unknown users and
// wrong passwords give the same error
func Authenticate(db *gorm.DB, h security.PasswordHasher, username, password string) (*model.User, error) {
	var user model.User

	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to load user, %w", err)
	}

	ok, err := h.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
