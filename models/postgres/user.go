package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'User' contains the blueprint definition of a FitFlow account. The email is the
 * primary key and, normalized (lower-cased, trimmed), is the identifier every other
 * table and the real-time layer use to reference the user.
 */
type User struct {
	Email        string `gorm:"primaryKey;size:100;not null"`
	FullName     string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// Profile fields consumed by the workout plan generator
	Gender    string         `gorm:"size:20"`
	Age       int            `gorm:"default:0"`
	HeightCm  float64        `gorm:"default:0"`
	WeightKg  float64        `gorm:"default:0"`
	Place     string         `gorm:"size:100"`
	Equipment datatypes.JSON `gorm:"type:jsonb"`
	Goal      string         `gorm:"size:50"`

	ProfileImage string `gorm:"size:500"`

	// Browser PushSubscription blob, set via /auth/subscribe. Empty if the user
	// never enabled push notifications.
	PushSubscription datatypes.JSON `gorm:"type:jsonb"`

	MemberSince time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
