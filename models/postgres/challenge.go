package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Challenge status values. Transitions only ever advance:
// pending -> accepted|declined, accepted -> active, active -> completed.
const (
	ChallengeStatusPending   = "pending"
	ChallengeStatusAccepted  = "accepted"
	ChallengeStatusDeclined  = "declined"
	ChallengeStatusActive    = "active"
	ChallengeStatusCompleted = "completed"
)

// DefaultChallengeExercise is the contest description used when the challenger
// doesn't pick one during setup.
const DefaultChallengeExercise = "20 Pushups"

/*
 * 'Challenge' is the durable record of a peer competition between two users.
 * Identity, parties and room token are immutable once created; only the status
 * (and, on completion, the winner) mutate, always through a conditional update
 * guarded by the expected current status.
 */
type Challenge struct {
	ID              string    `gorm:"primaryKey;size:36;not null"`
	ChallengerEmail string    `gorm:"size:100;not null;index:idx_challenges_challenger"`
	ChallengerName  string    `gorm:"size:100;not null"`
	OpponentEmail   string    `gorm:"size:100;not null;index:idx_challenges_opponent"`
	RoomID          string    `gorm:"size:50;not null;uniqueIndex"`
	Status          string    `gorm:"size:20;not null;default:pending;index:idx_challenges_status"`
	WinnerEmail     string    `gorm:"size:100"`
	Exercise        string    `gorm:"size:100;not null;default:'20 Pushups'"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

// IsParty reports whether an email belongs to one of the challenge's two parties.
func (c *Challenge) IsParty(email string) bool {
	return email == c.ChallengerEmail || email == c.OpponentEmail
}

// BeforeCreate assigns the challenge id and a fresh room token. The room id gets
// a "challenge_" prefix so the realtime layer can tell challenge rooms apart in logs.
func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.RoomID == "" {
		c.RoomID = "challenge_" + uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ChallengeStatusPending
	}
	if c.Exercise == "" {
		c.Exercise = DefaultChallengeExercise
	}
	return nil
}
