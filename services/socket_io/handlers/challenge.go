package handlers

import (
	"log"

	lifecycle "fitflow/services/challenge"
	socketio_types "fitflow/services/socket_io/types"
	"fitflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle the opponent accepting a challenge invitation. On success
// both parties are redirected to the challenge room over their live connections;
// a duplicate accept is a logged no-op and re-fires nothing.
func HandleAcceptChallenge(client *socket.Socket, db *gorm.DB, email string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			log.Printf("[ACCEPT-ERROR] Missing challenge id from user %s", email)
			client.Emit("error", gin.H{"error": "Missing challenge id"})
			return
		}
		challengeID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid challenge id"})
			return
		}

		ch, err := utils.FindChallenge(db, challengeID)
		if err != nil {
			log.Printf("[ACCEPT-ERROR] Challenge %s not found: %v", challengeID, err)
			client.Emit("error", gin.H{"error": "Challenge not found"})
			return
		}

		if ch.OpponentEmail != email {
			log.Printf("[ACCEPT-ERROR] User %s is not the opponent of challenge %s", email, challengeID)
			client.Emit("error", gin.H{"error": "Only the invited opponent can accept"})
			return
		}

		applied, err := lifecycle.Accept(db, challengeID)
		if err != nil {
			log.Printf("[ACCEPT-ERROR] Error accepting challenge %s: %v", challengeID, err)
			client.Emit("error", gin.H{"error": "Could not accept challenge"})
			return
		}
		if !applied {
			// Duplicate network event, already accepted/declined
			log.Printf("[ACCEPT] Challenge %s not pending anymore, ignoring accept from %s", challengeID, email)
			return
		}

		log.Printf("[ACCEPT-SUCCESS] Challenge %s accepted by %s", challengeID, email)

		// Redirect both parties to the room. Offline parties simply miss the
		// event; they can still reach the room through the challenge record.
		redirect := gin.H{
			"challenge_id": ch.ID,
			"room_id":      ch.RoomID,
			"exercise":     ch.Exercise,
		}
		for _, party := range []string{ch.ChallengerEmail, ch.OpponentEmail} {
			if conn, online := sio.GetConnection(party); online {
				conn.Emit("challenge-accepted", redirect)
			} else {
				log.Printf("[ACCEPT] Party %s offline, skipping redirect", party)
			}
		}
	}
}

// Function to handle the opponent declining a challenge invitation. Notifying the
// challenger beyond a live event is the notification layer's concern, not ours.
func HandleDeclineChallenge(client *socket.Socket, db *gorm.DB, email string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing challenge id"})
			return
		}
		challengeID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid challenge id"})
			return
		}

		ch, err := utils.FindChallenge(db, challengeID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Challenge not found"})
			return
		}
		if ch.OpponentEmail != email {
			client.Emit("error", gin.H{"error": "Only the invited opponent can decline"})
			return
		}

		applied, err := lifecycle.Decline(db, challengeID)
		if err != nil {
			log.Printf("[DECLINE-ERROR] Error declining challenge %s: %v", challengeID, err)
			client.Emit("error", gin.H{"error": "Could not decline challenge"})
			return
		}
		if !applied {
			log.Printf("[DECLINE] Challenge %s not pending anymore, ignoring decline from %s", challengeID, email)
			return
		}

		log.Printf("[DECLINE-SUCCESS] Challenge %s declined by %s", challengeID, email)
		if conn, online := sio.GetConnection(ch.ChallengerEmail); online {
			conn.Emit("challenge-declined", gin.H{"challenge_id": ch.ID})
		}
	}
}
