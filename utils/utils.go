package utils

import (
	"fmt"
	"strings"

	"fitflow/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NormalizeEmail lower-cases and trims an email so it can be used as the stable
// user identifier everywhere (DB keys, presence map, room snapshots).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// FindUserByEmail fetches a user record by normalized email.
func FindUserByEmail(db *gorm.DB, email string) (*postgres.User, error) {
	var user postgres.User
	result := db.Where("email = ?", NormalizeEmail(email)).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindChallenge fetches a challenge by its id.
func FindChallenge(db *gorm.DB, challengeID string) (*postgres.Challenge, error) {
	var challenge postgres.Challenge
	result := db.Where("id = ?", challengeID).First(&challenge)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("challenge not found")
		}
		return nil, result.Error
	}
	return &challenge, nil
}

// FindChallengeByRoom fetches the challenge owning a room token.
func FindChallengeByRoom(db *gorm.DB, roomID string) (*postgres.Challenge, error) {
	var challenge postgres.Challenge
	result := db.Where("room_id = ?", roomID).First(&challenge)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("challenge not found")
		}
		return nil, result.Error
	}
	return &challenge, nil
}
