package handlers

import (
	"log"
	"time"

	lifecycle "fitflow/services/challenge"
	"fitflow/services/redis"
	socketio_types "fitflow/services/socket_io/types"
	challengesync "fitflow/sync"
	"fitflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle the per-room ready barrier. The 'all-ready' broadcast fires
// exactly once, when the second distinct connection signals readiness; repeats
// from the same connection don't double-count.
func HandleMarkReady(client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, ok := argString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}

		if joined, member := sio.GetConnectionRoom(client.Id()); !member || joined != roomID {
			client.Emit("error", gin.H{"error": "You must join the room before marking ready"})
			return
		}

		if sio.Gate.MarkReady(roomID, client.Id()) {
			log.Printf("[READY] Both members of room %s are ready", roomID)
			sio.Sio_server.To(socket.Room(roomID)).Emit("all-ready", gin.H{"room_id": roomID})
		}
	}
}

// Function to handle the start command. Applies accepted -> active once the ready
// barrier has resolved and broadcasts the start parameters to the whole room.
// A second start for the same challenge is a logged no-op.
func HandleStartNow(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, email string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing start parameters"})
			return
		}
		roomID, ok1 := argString(args[0])
		exercise, ok2 := argString(args[1])
		target, ok3 := argInt(args[2])
		if !ok1 || !ok2 || !ok3 {
			client.Emit("error", gin.H{"error": "Invalid start parameters"})
			return
		}

		if !sio.Gate.Resolved(roomID) {
			client.Emit("error", gin.H{"error": "Both players must be ready before starting"})
			return
		}

		ch, err := utils.FindChallengeByRoom(db, roomID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Challenge room not found"})
			return
		}

		applied, err := lifecycle.Activate(db, ch.ID)
		if err != nil {
			log.Printf("[START-ERROR] Error activating challenge %s: %v", ch.ID, err)
			client.Emit("error", gin.H{"error": "Could not start challenge"})
			return
		}
		if !applied {
			log.Printf("[START] Challenge %s not in accepted state, ignoring start from %s", ch.ID, email)
			return
		}

		if room, err := redisClient.GetChallengeRoom(roomID); err == nil && room != nil {
			room.Begin(exercise, target, time.Now())
			if err := redisClient.SaveChallengeRoom(room); err != nil {
				log.Printf("[START-ERROR] Error saving room snapshot %s: %v", roomID, err)
			}
		}

		log.Printf("[START-SUCCESS] Challenge %s started by %s (%s, target %d)", ch.ID, email, exercise, target)
		sio.Sio_server.To(socket.Room(roomID)).Emit("challenge-started", gin.H{
			"exercise": exercise,
			"target":   target,
		})
	}
}

// Function to handle the in-game counter start sync: a server-initiated broadcast
// to the whole room so both rep counters begin against the same target.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing game parameters"})
			return
		}
		roomID, ok1 := argString(args[0])
		winTarget, ok2 := argInt(args[1])
		if !ok1 || !ok2 {
			client.Emit("error", gin.H{"error": "Invalid game parameters"})
			return
		}

		if room, err := redisClient.GetChallengeRoom(roomID); err == nil && room != nil {
			room.WinTarget = winTarget
			if err := redisClient.SaveChallengeRoom(room); err != nil {
				log.Printf("[GAME-ERROR] Error saving room snapshot %s: %v", roomID, err)
			}
		}

		sio.Sio_server.To(socket.Room(roomID)).Emit("game-started", gin.H{
			"win_target": winTarget,
		})
	}
}

// Function to relay periodic rep-count updates to the opposing peer. Best-effort:
// the snapshot write is diagnostics/history, the broadcast is the game.
func HandleRepUpdate(redisClient *redis.RedisClient, client *socket.Socket,
	email string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			return
		}
		roomID, ok1 := argString(args[0])
		count, ok2 := argInt(args[1])
		if !ok1 || !ok2 {
			return
		}

		client.To(socket.Room(roomID)).Emit("opponent-rep-update", gin.H{
			"email": email,
			"count": count,
		})

		if err := redisClient.UpdateRepCount(roomID, email, count); err != nil {
			log.Printf("[REPS-ERROR] Error recording rep count for %s in %s: %v", email, roomID, err)
		}
	}
}

// Function to handle the finish event. The first finish received while the
// challenge is active commits the winner through a conditional update; the
// concurrent loser of that race, and any later duplicates, are logged no-ops.
func HandleFinishGame(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, email string, sio *socketio_types.SocketServer,
	syncManager *challengesync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing finish parameters"})
			return
		}
		roomID, ok1 := argString(args[0])
		winnerEmail, ok2 := argString(args[1])
		if !ok1 || !ok2 {
			client.Emit("error", gin.H{"error": "Invalid finish parameters"})
			return
		}
		winnerEmail = utils.NormalizeEmail(winnerEmail)

		ch, err := utils.FindChallengeByRoom(db, roomID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Challenge room not found"})
			return
		}

		// The durable record may only ever name one of the two parties as winner
		if !ch.IsParty(winnerEmail) {
			log.Printf("[FINISH-ERROR] Reported winner %s is not a party of challenge %s", winnerEmail, ch.ID)
			client.Emit("error", gin.H{"error": "Winner is not part of this challenge"})
			return
		}

		won, err := lifecycle.Complete(db, ch.ID, winnerEmail)
		if err != nil {
			log.Printf("[FINISH-ERROR] Error completing challenge %s: %v", ch.ID, err)
			client.Emit("error", gin.H{"error": "Could not finish challenge"})
			return
		}
		if !won {
			log.Printf("[FINISH] Challenge %s already completed, ignoring finish from %s", ch.ID, email)
			return
		}

		log.Printf("[FINISH-SUCCESS] Challenge %s won by %s", ch.ID, winnerEmail)
		sio.Sio_server.To(socket.Room(roomID)).Emit("game-over", gin.H{
			"winner_email": winnerEmail,
		})

		if err := syncManager.SyncChallengeResult(roomID); err != nil {
			log.Printf("[FINISH-ERROR] Error syncing challenge result for %s: %v", roomID, err)
		}
	}
}
