package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'WorkoutPlan' stores the generated 7-day plan for a user. WeeklyPlan is the full
 * document produced by services/workout (7 days, 8 exercises per day) serialized as
 * JSON; the scalar columns exist so plans can be queried without unmarshaling.
 */
type WorkoutPlan struct {
	UserEmail   string         `gorm:"primaryKey;size:100;not null"`
	BMI         float64        `gorm:"not null"`
	BMICategory string         `gorm:"size:30;not null"`
	Goal        string         `gorm:"size:50;not null"`
	WeeklyPlan  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	LastUpdated time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
