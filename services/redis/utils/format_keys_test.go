package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKeys(t *testing.T) {
	assert.Equal(t, "challenge_room:challenge_abc", FormatChallengeRoomKey("challenge_abc"))
	assert.Equal(t, "workout_plan:ana@example.com", FormatWorkoutPlanKey("ana@example.com"))
}
