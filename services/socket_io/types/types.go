package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer contains the socket.io server and the in-memory presence registry
// mapping normalized emails to live connections. It also remembers which challenge
// room each connection has joined, so disconnect handlers can clean up.
//
// All of this state is process-local and lost on restart; the Challenge record in
// Postgres is the only durable piece of the realtime layer.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track email -> socket connection. One live connection per user,
	// last register wins.
	UserConnections map[string]*socket.Socket
	// Map to track connection -> joined challenge room (at most one per connection).
	connectionRooms map[socket.SocketId]string
	mutex           sync.RWMutex

	// Room membership and the per-room ready barrier. Separate structures with
	// their own locks so unrelated rooms never serialize on the presence map.
	Rooms *RoomStore
	Gate  *ReadyGate
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		connectionRooms: make(map[socket.SocketId]string),
		Rooms:           NewRoomStore(),
		Gate:            NewReadyGate(),
	}
}

// AddConnection binds email -> client, superseding any prior binding. A superseded
// connection is not closed, it just becomes unreachable through lookup; its own
// disconnect handler removes nothing thanks to RemoveConnectionIfSame.
func (s *SocketServer) AddConnection(email string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[email] = client
}

// RemoveConnectionIfSame removes the binding only when it still points at this
// exact connection. A late disconnect of a stale connection must not clobber a
// newer registration of the same user.
func (s *SocketServer) RemoveConnectionIfSame(email string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if current, exists := s.UserConnections[email]; exists && current == client {
		delete(s.UserConnections, email)
	}
}

func (s *SocketServer) GetConnection(email string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.UserConnections[email]
	return client, exists
}

// SetConnectionRoom records which challenge room a connection has joined.
func (s *SocketServer) SetConnectionRoom(id socket.SocketId, roomID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connectionRooms[id] = roomID
}

// GetConnectionRoom returns the room a connection joined, if any.
func (s *SocketServer) GetConnectionRoom(id socket.SocketId) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	roomID, exists := s.connectionRooms[id]
	return roomID, exists
}

// ClearConnectionRoom forgets the connection's room on leave/disconnect.
func (s *SocketServer) ClearConnectionRoom(id socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.connectionRooms, id)
}

// DetachFromRoom removes a connection from whatever room it currently occupies:
// membership, ready state and the room binding all go in one step, and when the
// last member leaves the gate state dies with the room. Returns the vacated room
// and the remaining member count; ok is false when the connection had no room.
// Callers still own the socket.io leave and peer notifications.
func (s *SocketServer) DetachFromRoom(id socket.SocketId) (roomID string, remaining int, ok bool) {
	s.mutex.Lock()
	roomID, ok = s.connectionRooms[id]
	if ok {
		delete(s.connectionRooms, id)
	}
	s.mutex.Unlock()
	if !ok {
		return "", 0, false
	}

	remaining = s.Rooms.Leave(roomID, id)
	s.Gate.Leave(roomID, id)
	if remaining == 0 {
		s.Gate.DropRoom(roomID)
	}
	return roomID, remaining, true
}

// RoomStore tracks which connections belong to which challenge room. socket.io
// rooms do the actual broadcasting; this bookkeeping exists to enforce the
// two-member cap and to know when the last member leaves.
type RoomStore struct {
	mutex sync.Mutex
	rooms map[string]map[socket.SocketId]*socket.Socket
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]map[socket.SocketId]*socket.Socket),
	}
}

// Join adds a connection to a room, creating the room on first join. Re-joining
// is idempotent. Returns false when the room already has two other members.
func (r *RoomStore) Join(roomID string, id socket.SocketId, client *socket.Socket) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	members, exists := r.rooms[roomID]
	if !exists {
		members = make(map[socket.SocketId]*socket.Socket)
		r.rooms[roomID] = members
	}
	if _, already := members[id]; !already && len(members) >= 2 {
		return false
	}
	members[id] = client
	return true
}

// Leave removes a connection from a room and reports how many members remain.
// When the last member leaves the room itself is destroyed.
func (r *RoomStore) Leave(roomID string, id socket.SocketId) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	members, exists := r.rooms[roomID]
	if !exists {
		return 0
	}
	delete(members, id)
	if len(members) == 0 {
		delete(r.rooms, roomID)
		return 0
	}
	return len(members)
}

// MemberCount returns the current size of a room (0 if it doesn't exist).
func (r *RoomStore) MemberCount(roomID string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.rooms[roomID])
}

// ReadyGate is the per-room rendezvous barrier: the contest may start only after
// two distinct connections have signaled readiness. The gate is one-shot; once
// resolved it never fires again for that room.
type ReadyGate struct {
	mutex sync.Mutex
	rooms map[string]*readyState
}

type readyState struct {
	ready    map[socket.SocketId]bool
	resolved bool
}

func NewReadyGate() *ReadyGate {
	return &ReadyGate{
		rooms: make(map[string]*readyState),
	}
}

// MarkReady records a readiness signal. Idempotent per connection. Returns true
// exactly once: the moment the second distinct connection signals.
func (g *ReadyGate) MarkReady(roomID string, id socket.SocketId) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	state, exists := g.rooms[roomID]
	if !exists {
		state = &readyState{ready: make(map[socket.SocketId]bool)}
		g.rooms[roomID] = state
	}
	if state.resolved {
		return false
	}
	state.ready[id] = true
	if len(state.ready) >= 2 {
		state.resolved = true
		return true
	}
	return false
}

// Resolved reports whether the gate has already fired for a room.
func (g *ReadyGate) Resolved(roomID string) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	state, exists := g.rooms[roomID]
	return exists && state.resolved
}

// Leave drops a connection from the ready set. The gate stays resolved if it
// already fired (one-shot, not a toggle).
func (g *ReadyGate) Leave(roomID string, id socket.SocketId) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if state, exists := g.rooms[roomID]; exists {
		delete(state.ready, id)
	}
}

// DropRoom destroys all gate state for a room, called when its last member leaves.
func (g *ReadyGate) DropRoom(roomID string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.rooms, roomID)
}
