package socketio_types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestPresenceLastRegisterWins(t *testing.T) {
	server := NewSocketServer()
	first := &socket.Socket{}
	second := &socket.Socket{}

	server.AddConnection("ana@example.com", first)
	server.AddConnection("ana@example.com", second)

	got, exists := server.GetConnection("ana@example.com")
	assert.True(t, exists)
	assert.Same(t, second, got)
}

func TestPresenceStaleDisconnectIsNoOp(t *testing.T) {
	server := NewSocketServer()
	stale := &socket.Socket{}
	fresh := &socket.Socket{}

	server.AddConnection("ana@example.com", stale)
	server.AddConnection("ana@example.com", fresh)

	// The stale connection's disconnect handler fires after the re-register
	// and must not clobber the newer binding.
	server.RemoveConnectionIfSame("ana@example.com", stale)

	got, exists := server.GetConnection("ana@example.com")
	assert.True(t, exists)
	assert.Same(t, fresh, got)

	server.RemoveConnectionIfSame("ana@example.com", fresh)
	_, exists = server.GetConnection("ana@example.com")
	assert.False(t, exists)
}

func TestConnectionRoomBookkeeping(t *testing.T) {
	server := NewSocketServer()

	_, exists := server.GetConnectionRoom("conn-1")
	assert.False(t, exists)

	server.SetConnectionRoom("conn-1", "challenge_abc")
	roomID, exists := server.GetConnectionRoom("conn-1")
	assert.True(t, exists)
	assert.Equal(t, "challenge_abc", roomID)

	server.ClearConnectionRoom("conn-1")
	_, exists = server.GetConnectionRoom("conn-1")
	assert.False(t, exists)
}

func TestRoomStoreCapAtTwo(t *testing.T) {
	store := NewRoomStore()
	a := &socket.Socket{}
	b := &socket.Socket{}
	c := &socket.Socket{}

	assert.True(t, store.Join("challenge_abc", "conn-a", a))
	assert.True(t, store.Join("challenge_abc", "conn-b", b))
	assert.Equal(t, 2, store.MemberCount("challenge_abc"))

	// Third distinct connection is rejected, but rejoining is idempotent.
	assert.False(t, store.Join("challenge_abc", "conn-c", c))
	assert.True(t, store.Join("challenge_abc", "conn-a", a))
	assert.Equal(t, 2, store.MemberCount("challenge_abc"))
}

func TestRoomStoreLeaveDestroysEmptyRoom(t *testing.T) {
	store := NewRoomStore()
	a := &socket.Socket{}
	b := &socket.Socket{}

	store.Join("challenge_abc", "conn-a", a)
	store.Join("challenge_abc", "conn-b", b)

	assert.Equal(t, 1, store.Leave("challenge_abc", "conn-a"))
	assert.Equal(t, 0, store.Leave("challenge_abc", "conn-b"))
	assert.Equal(t, 0, store.MemberCount("challenge_abc"))

	// After destruction the slot is fresh, former members don't linger.
	assert.True(t, store.Join("challenge_abc", "conn-c", &socket.Socket{}))
	assert.Equal(t, 1, store.MemberCount("challenge_abc"))
}

func TestRoomStoreLeaveUnknownRoom(t *testing.T) {
	store := NewRoomStore()
	assert.Equal(t, 0, store.Leave("challenge_missing", "conn-a"))
}

func TestReadyGateFiresOnceOnSecondDistinct(t *testing.T) {
	gate := NewReadyGate()

	assert.False(t, gate.MarkReady("challenge_abc", "conn-a"))
	// Same connection signaling again doesn't count as a second participant.
	assert.False(t, gate.MarkReady("challenge_abc", "conn-a"))
	assert.False(t, gate.Resolved("challenge_abc"))

	assert.True(t, gate.MarkReady("challenge_abc", "conn-b"))
	assert.True(t, gate.Resolved("challenge_abc"))

	// One-shot: no signal ever fires the gate again.
	assert.False(t, gate.MarkReady("challenge_abc", "conn-a"))
	assert.False(t, gate.MarkReady("challenge_abc", "conn-c"))
}

func TestReadyGateLeaveBeforeResolve(t *testing.T) {
	gate := NewReadyGate()

	gate.MarkReady("challenge_abc", "conn-a")
	gate.Leave("challenge_abc", "conn-a")

	// conn-a left, so conn-b is back to being the first signal.
	assert.False(t, gate.MarkReady("challenge_abc", "conn-b"))
	assert.True(t, gate.MarkReady("challenge_abc", "conn-a"))
}

func TestReadyGateStaysResolvedAfterLeave(t *testing.T) {
	gate := NewReadyGate()

	gate.MarkReady("challenge_abc", "conn-a")
	gate.MarkReady("challenge_abc", "conn-b")
	gate.Leave("challenge_abc", "conn-a")

	assert.True(t, gate.Resolved("challenge_abc"))
}

func TestDetachFromRoomOnSwitch(t *testing.T) {
	server := NewSocketServer()
	a := &socket.Socket{}
	peer := &socket.Socket{}

	server.Rooms.Join("challenge_a", "conn-1", a)
	server.Rooms.Join("challenge_a", "conn-2", peer)
	server.SetConnectionRoom("conn-1", "challenge_a")
	server.Gate.MarkReady("challenge_a", "conn-1")

	// Same connection moves on to the next challenge: the old room must not
	// keep it as a member.
	roomID, remaining, ok := server.DetachFromRoom("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "challenge_a", roomID)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, 1, server.Rooms.MemberCount("challenge_a"))
	_, exists := server.GetConnectionRoom("conn-1")
	assert.False(t, exists)

	assert.True(t, server.Rooms.Join("challenge_b", "conn-1", a))
	server.SetConnectionRoom("conn-1", "challenge_b")

	// The vacated slot in the old room is free for a reconnecting peer.
	assert.True(t, server.Rooms.Join("challenge_a", "conn-3", &socket.Socket{}))
	assert.Equal(t, 2, server.Rooms.MemberCount("challenge_a"))
}

func TestDetachFromRoomLastMemberTearsDown(t *testing.T) {
	server := NewSocketServer()
	server.Rooms.Join("challenge_a", "conn-1", &socket.Socket{})
	server.SetConnectionRoom("conn-1", "challenge_a")
	server.Gate.MarkReady("challenge_a", "conn-1")

	roomID, remaining, ok := server.DetachFromRoom("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "challenge_a", roomID)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 0, server.Rooms.MemberCount("challenge_a"))

	// Gate state died with the room: the next signal counts as the first again.
	assert.False(t, server.Gate.MarkReady("challenge_a", "conn-9"))

	// A connection without a room detaches to nothing.
	_, _, ok = server.DetachFromRoom("conn-1")
	assert.False(t, ok)
}

func TestReadyGateDropRoom(t *testing.T) {
	gate := NewReadyGate()

	gate.MarkReady("challenge_abc", "conn-a")
	gate.MarkReady("challenge_abc", "conn-b")
	gate.DropRoom("challenge_abc")

	assert.False(t, gate.Resolved("challenge_abc"))
	assert.False(t, gate.MarkReady("challenge_abc", "conn-a"))
	assert.True(t, gate.MarkReady("challenge_abc", "conn-b"))
}
