package redis

import "time"

/*
 * 'ChallengeRoom' is the ephemeral live state of a challenge room while a contest
 * is being set up and played. It mirrors nothing authoritative: the Challenge row
 * in Postgres owns status and winner, this snapshot only carries the last agreed
 * setup and the per-player rep counts so the sync manager can persist sessions
 * when the game ends. Lost on restart, expired by TTL.
 */
type ChallengeRoom struct {
	RoomID      string         `json:"room_id"`
	ChallengeID string         `json:"challenge_id"`
	Exercise    string         `json:"exercise"`
	WinTarget   int            `json:"win_target"`
	Started     bool           `json:"started"`
	StartedAt   time.Time      `json:"started_at"`
	RepCounts   map[string]int `json:"rep_counts"` // email -> last reported count
}

// Begin marks the contest as started with the parameters the start command
// carried. The snapshot must record the same exercise and target that were
// broadcast to the room, since the sessions persisted at game end are built
// from it.
func (r *ChallengeRoom) Begin(exercise string, target int, now time.Time) {
	r.Started = true
	r.StartedAt = now
	r.Exercise = exercise
	r.WinTarget = target
}
