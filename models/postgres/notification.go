package postgres

import (
	"time"
)

/*
 * 'Notification' is a per-user inbox entry. The realtime layer writes one whenever
 * a challenge invitation cannot be delivered over a live connection.
 */
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserEmail string    `gorm:"size:100;not null;index:idx_notifications_user"`
	Title     string    `gorm:"size:200;not null"`
	Message   string    `gorm:"size:1000;not null"`
	IsRead    bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
