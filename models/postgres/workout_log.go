package postgres

import (
	"time"
)

// WorkoutLog is a single logged workout entry (free-form, user submitted).
type WorkoutLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	UserEmail    string    `gorm:"size:100;not null;index:idx_workout_logs_user"`
	ExerciseName string    `gorm:"size:100;not null"`
	Reps         int       `gorm:"default:0"`
	DurationMin  int       `gorm:"default:0"`
	Calories     int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
