package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatChallengeRoomKey(roomID string) string {
	return fmt.Sprintf("challenge_room:%s", roomID)
}

func FormatWorkoutPlanKey(email string) string {
	return fmt.Sprintf("workout_plan:%s", email)
}
