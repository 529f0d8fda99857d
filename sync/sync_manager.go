package sync

import (
	"fmt"
	"time"

	"fitflow/models/postgres"
	"fitflow/services/redis"

	"gorm.io/gorm"
)

// Rough estimate for bodyweight rep exercises, good enough for the history view.
const caloriesPerRep = 0.32

// SyncManager persists the outcome of a finished challenge: it drains the
// ephemeral room snapshot from Redis into durable ExerciseSession rows and then
// drops the snapshot.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// SyncChallengeResult writes one exercise session per participant that reported
// reps during the contest. Safe to call when no snapshot exists (nothing to sync:
// the snapshot may have expired or the process restarted mid-game).
func (sm *SyncManager) SyncChallengeResult(roomID string) error {
	room, err := sm.redisClient.GetChallengeRoom(roomID)
	if err != nil {
		return fmt.Errorf("error getting challenge room state from Redis: %v", err)
	}
	if room == nil {
		return nil
	}

	duration := 0
	if room.Started && !room.StartedAt.IsZero() {
		duration = int(time.Since(room.StartedAt).Seconds())
	}

	tx := sm.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("error starting transaction: %v", tx.Error)
	}

	for email, reps := range room.RepCounts {
		session := postgres.ExerciseSession{
			UserEmail:       email,
			ExerciseName:    room.Exercise,
			Reps:            reps,
			DurationSeconds: duration,
			CaloriesBurned:  float64(reps) * caloriesPerRep,
			ChallengeID:     room.ChallengeID,
		}
		if err := tx.Create(&session).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("error persisting exercise session for %s: %v", email, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("error committing challenge result: %v", err)
	}

	if err := sm.redisClient.DeleteChallengeRoom(roomID); err != nil {
		return fmt.Errorf("error cleaning challenge room state: %v", err)
	}
	return nil
}
