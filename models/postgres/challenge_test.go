package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeIsParty(t *testing.T) {
	ch := Challenge{
		ChallengerEmail: "ana@example.com",
		OpponentEmail:   "bob@example.com",
	}

	assert.True(t, ch.IsParty("ana@example.com"))
	assert.True(t, ch.IsParty("bob@example.com"))
	assert.False(t, ch.IsParty("mallory@example.com"))
	assert.False(t, ch.IsParty(""))
}

func TestChallengeBeforeCreateDefaults(t *testing.T) {
	ch := Challenge{
		ChallengerEmail: "ana@example.com",
		OpponentEmail:   "bob@example.com",
	}
	require.NoError(t, ch.BeforeCreate(nil))

	assert.NotEmpty(t, ch.ID)
	assert.True(t, strings.HasPrefix(ch.RoomID, "challenge_"))
	assert.Equal(t, ChallengeStatusPending, ch.Status)
	assert.Equal(t, DefaultChallengeExercise, ch.Exercise)

	// Pre-set fields are left alone
	preset := Challenge{ID: "ch-1", RoomID: "challenge_fixed", Status: ChallengeStatusAccepted, Exercise: "30 Squats"}
	require.NoError(t, preset.BeforeCreate(nil))
	assert.Equal(t, "ch-1", preset.ID)
	assert.Equal(t, "challenge_fixed", preset.RoomID)
	assert.Equal(t, ChallengeStatusAccepted, preset.Status)
	assert.Equal(t, "30 Squats", preset.Exercise)
}
