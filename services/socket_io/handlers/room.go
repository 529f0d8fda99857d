package handlers

import (
	"fmt"
	"log"

	redis_models "fitflow/models/redis"
	lifecycle "fitflow/services/challenge"
	"fitflow/services/redis"
	socketio_types "fitflow/services/socket_io/types"
	"fitflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// socket.io delivers JSON numbers as float64, but some clients send numeric
// fields as strings. Normalize both.
func argInt(arg interface{}) (int, bool) {
	switch v := arg.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

func argString(arg interface{}) (string, bool) {
	s, ok := arg.(string)
	return s, ok
}

// Function to handle the act of joining a challenge room. The room id must belong
// to an existing challenge and the caller must be one of its two parties; a room
// holds at most two connections. Re-joining is idempotent.
func HandleJoinChallengeRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, email string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinChallengeRoom started - User: %s, Args: %v, Socket ID: %s",
			email, args, client.Id())

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, ok := argString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}

		ch, err := utils.FindChallengeByRoom(db, roomID)
		if err != nil {
			log.Printf("[JOIN-ERROR] No challenge for room %s: %v", roomID, err)
			client.Emit("error", gin.H{"error": "Challenge room not found"})
			return
		}

		if !ch.IsParty(email) {
			log.Printf("[JOIN-ERROR] User %s is not a party of challenge %s", email, ch.ID)
			client.Emit("error", gin.H{"error": "You are not part of this challenge"})
			return
		}

		// A connection occupies at most one room. Switching to a new challenge in
		// the same session vacates the old room first, so its peer gets notified
		// and an emptied room is destroyed instead of leaking the stale member.
		if prev, joined := sio.GetConnectionRoom(client.Id()); joined && prev != roomID {
			log.Printf("[JOIN] User %s switching rooms %s -> %s", email, prev, roomID)
			detachAndNotify(redisClient, client, email, sio)
		}

		if !sio.Rooms.Join(roomID, client.Id(), client) {
			log.Printf("[JOIN-ERROR] Room %s is full, rejecting %s", roomID, email)
			client.Emit("error", gin.H{"error": "Challenge room is full"})
			return
		}

		client.Join(socket.Room(roomID))
		sio.SetConnectionRoom(client.Id(), roomID)

		// First join creates the live snapshot used during setup and play
		room, err := redisClient.GetChallengeRoom(roomID)
		if err != nil {
			log.Printf("[JOIN-ERROR] Error reading room snapshot %s: %v", roomID, err)
		}
		if room == nil {
			room = &redis_models.ChallengeRoom{
				RoomID:      roomID,
				ChallengeID: ch.ID,
				Exercise:    ch.Exercise,
				RepCounts:   make(map[string]int),
			}
			if err := redisClient.SaveChallengeRoom(room); err != nil {
				log.Printf("[JOIN-ERROR] Error saving room snapshot %s: %v", roomID, err)
			}
		}

		// Tell the other member a peer arrived, then ack the join
		client.To(socket.Room(roomID)).Emit("peer-joined", gin.H{
			"email":   email,
			"room_id": roomID,
		})
		client.Emit("room-joined", gin.H{
			"room_id":    roomID,
			"exercise":   room.Exercise,
			"win_target": room.WinTarget,
		})
		log.Printf("[JOIN-SUCCESS] User %s joined room %s", email, roomID)
	}
}

// Function to handle setup negotiation: either side may change the exercise and
// target while the challenge has not gone active yet.
func HandleSetupChange(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, email string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing setup parameters"})
			return
		}
		roomID, ok1 := argString(args[0])
		exercise, ok2 := argString(args[1])
		target, ok3 := argInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			client.Emit("error", gin.H{"error": "Invalid setup parameters"})
			return
		}

		ch, err := utils.FindChallengeByRoom(db, roomID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Challenge room not found"})
			return
		}

		label := fmt.Sprintf("%d %s", target, exercise)
		applied, err := lifecycle.UpdateExercise(db, ch.ID, label)
		if err != nil {
			log.Printf("[SETUP-ERROR] Error updating exercise for %s: %v", ch.ID, err)
			client.Emit("error", gin.H{"error": "Could not update setup"})
			return
		}
		if !applied {
			// Contest already active or over, setup is frozen
			log.Printf("[SETUP] Challenge %s already active, ignoring setup change from %s", ch.ID, email)
			return
		}

		if room, err := redisClient.GetChallengeRoom(roomID); err == nil && room != nil {
			room.Exercise = label
			room.WinTarget = target
			if err := redisClient.SaveChallengeRoom(room); err != nil {
				log.Printf("[SETUP-ERROR] Error saving room snapshot %s: %v", roomID, err)
			}
		}

		client.To(socket.Room(roomID)).Emit("setup-update", gin.H{
			"exercise": exercise,
			"target":   target,
		})
		log.Printf("[SETUP] Room %s setup changed by %s: %s", roomID, email, label)
	}
}

// HandleSignal relays one session-negotiation message (offer/answer/candidate)
// to the other member of the room. Pure forwarding, payload untouched.
func HandleSignal(event string, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing signaling payload"})
			return
		}
		roomID, ok := argString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}
		client.To(socket.Room(roomID)).Emit(event, args[1])
	}
}
