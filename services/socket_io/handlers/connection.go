package handlers

import (
	"log"

	"fitflow/services/redis"
	socketio_types "fitflow/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleRegister re-binds the authenticated email to this connection. The binding
// already happens on connect; clients emit 'register' again after recovering from
// a transport hiccup, and last-register-wins makes that harmless.
func HandleRegister(client *socket.Socket, email string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[REGISTER] Re-binding user %s to socket %s", email, client.Id())
		sio.AddConnection(email, client)
	}
}

// detachAndNotify runs the full room departure sequence for a connection: store
// bookkeeping, socket.io room leave, peer notification and, when the last member
// leaves, the room snapshot teardown. Shared by the disconnect handler and the
// join handler (a connection switching rooms must vacate the old one first).
func detachAndNotify(redisClient *redis.RedisClient, client *socket.Socket,
	email string, sio *socketio_types.SocketServer) {
	roomID, remaining, ok := sio.DetachFromRoom(client.Id())
	if !ok {
		return
	}
	client.Leave(socket.Room(roomID))

	if remaining > 0 {
		sio.Sio_server.To(socket.Room(roomID)).Emit("peer-disconnected", gin.H{
			"email":   email,
			"room_id": roomID,
		})
		log.Printf("[LEAVE] User %s left room %s, %d member(s) remain", email, roomID, remaining)
	} else {
		// Last one out: the room and everything scoped to it dies
		if err := redisClient.DeleteChallengeRoom(roomID); err != nil {
			log.Printf("[LEAVE-ERROR] Error cleaning room snapshot %s: %v", roomID, err)
		}
		log.Printf("[LEAVE] Room %s destroyed", roomID)
	}
}

// Function to handle socket.io client disconnections: presence unbinding plus
// room departure. Disconnect is the only cancellation signal in this layer.
func HandleDisconnecting(redisClient *redis.RedisClient, client *socket.Socket,
	email string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting started - User: %s, Socket: %s", email, client.Id())

		detachAndNotify(redisClient, client, email, sio)

		// Only unbind presence if this socket still owns the binding: a stale
		// disconnect must not clobber a newer login of the same user.
		sio.RemoveConnectionIfSame(email, client)
		log.Printf("[DISCONNECT-DONE] User disconnected: %s", email)
	}
}
