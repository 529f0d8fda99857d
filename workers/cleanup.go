package workers

import (
	"log"
	"time"

	"fitflow/models/postgres"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

const readNotificationRetention = 30 * 24 * time.Hour

// StartCleanupScheduler launches the background janitor. Currently it prunes
// read notifications older than the retention window once a day.
func StartCleanupScheduler(db *gorm.DB) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-readNotificationRetention)
			result := db.Where("is_read = ? AND created_at < ?", true, cutoff).
				Delete(&postgres.Notification{})
			if result.Error != nil {
				log.Printf("[CLEANUP-ERROR] Error pruning notifications: %v", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("[CLEANUP] Pruned %d read notifications", result.RowsAffected)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
