package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChallengeRoomBegin(t *testing.T) {
	room := ChallengeRoom{
		RoomID:      "challenge_abc",
		ChallengeID: "ch-1",
		Exercise:    "20 Pushups",
		RepCounts:   map[string]int{},
	}

	now := time.Now()
	room.Begin("30 Squats", 30, now)

	assert.True(t, room.Started)
	assert.Equal(t, now, room.StartedAt)
	// The snapshot carries exactly what the start command broadcast, even when
	// it differs from the last negotiated setup.
	assert.Equal(t, "30 Squats", room.Exercise)
	assert.Equal(t, 30, room.WinTarget)
}
