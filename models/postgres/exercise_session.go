package postgres

import (
	"time"
)

/*
 * 'ExerciseSession' is a rep-counter session result. Rows are written both by the
 * HTTP API (solo sessions) and by the sync manager when a challenge finishes.
 */
type ExerciseSession struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	UserEmail       string    `gorm:"size:100;not null;index:idx_exercise_sessions_user"`
	ExerciseName    string    `gorm:"size:100;not null;default:'Push-up'"`
	Reps            int       `gorm:"not null"`
	DurationSeconds int       `gorm:"not null"`
	CaloriesBurned  float64   `gorm:"not null"`
	ChallengeID     string    `gorm:"size:36;index:idx_exercise_sessions_challenge"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
