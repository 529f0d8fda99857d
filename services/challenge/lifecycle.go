package challenge

import (
	"fmt"

	"fitflow/models/postgres"

	"gorm.io/gorm"
)

/*
 * Challenge lifecycle state machine.
 *
 * pending -> accepted | declined
 * accepted -> active
 * active -> completed
 *
 * Every transition is applied as a conditional UPDATE guarded by the expected
 * current status, so the database serializes concurrent events per challenge id:
 * the first finish event commits the winner, the losers of the race observe
 * RowsAffected == 0 and are treated as no-ops. Duplicate accepts, declines of an
 * already-accepted challenge and similar stale network events fall out the same
 * way instead of erroring.
 */

var validTransitions = map[string][]string{
	postgres.ChallengeStatusPending:  {postgres.ChallengeStatusAccepted, postgres.ChallengeStatusDeclined},
	postgres.ChallengeStatusAccepted: {postgres.ChallengeStatusActive},
	postgres.ChallengeStatusActive:   {postgres.ChallengeStatusCompleted},
}

// ValidTransition reports whether from -> to is a legal status advance.
func ValidTransition(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transition performs the guarded status update. Returns true when this call won
// the transition, false when the challenge was not in the expected status.
func transition(db *gorm.DB, challengeID, expected, next string, extra map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": next}
	for k, v := range extra {
		updates[k] = v
	}

	result := db.Model(&postgres.Challenge{}).
		Where("id = ? AND status = ?", challengeID, expected).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("error updating challenge %s to %s: %w", challengeID, next, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Accept applies pending -> accepted.
func Accept(db *gorm.DB, challengeID string) (bool, error) {
	return transition(db, challengeID, postgres.ChallengeStatusPending, postgres.ChallengeStatusAccepted, nil)
}

// Decline applies pending -> declined.
func Decline(db *gorm.DB, challengeID string) (bool, error) {
	return transition(db, challengeID, postgres.ChallengeStatusPending, postgres.ChallengeStatusDeclined, nil)
}

// Activate applies accepted -> active once both parties are ready and a start
// command was issued.
func Activate(db *gorm.DB, challengeID string) (bool, error) {
	return transition(db, challengeID, postgres.ChallengeStatusAccepted, postgres.ChallengeStatusActive, nil)
}

// Complete applies active -> completed and records the winner. Exactly one of
// two concurrent finish events can win this update; the other sees false.
func Complete(db *gorm.DB, challengeID, winnerEmail string) (bool, error) {
	return transition(db, challengeID, postgres.ChallengeStatusActive, postgres.ChallengeStatusCompleted,
		map[string]interface{}{"winner_email": winnerEmail})
}

// UpdateExercise overwrites the contest description during setup negotiation.
// Only allowed before the challenge goes active.
func UpdateExercise(db *gorm.DB, challengeID, exercise string) (bool, error) {
	result := db.Model(&postgres.Challenge{}).
		Where("id = ? AND status IN ?", challengeID,
			[]string{postgres.ChallengeStatusPending, postgres.ChallengeStatusAccepted}).
		Update("exercise", exercise)
	if result.Error != nil {
		return false, fmt.Errorf("error updating challenge %s exercise: %w", challengeID, result.Error)
	}
	return result.RowsAffected > 0, nil
}
