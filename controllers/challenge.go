package controllers

import (
	"log"
	"net/http"

	"fitflow/middleware"
	"fitflow/models/postgres"
	"fitflow/services/push"
	socketio_types "fitflow/services/socket_io/types"
	"fitflow/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Send a challenge to another user
// @Description Creates a pending challenge with a fresh room id. If the opponent
// @Description has a live connection the invitation is pushed over it, otherwise
// @Description delivery falls back to web push plus an inbox notification. The
// @Description response reflects record creation, not realtime delivery.
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body object{to_email=string,exercise=string} true "Challenge payload"
// @Success 200 {object} object{message=string,challenge_id=string,room_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/send-challenge [post]
// @Security ApiKeyAuth
func SendChallenge(db *gorm.DB, sio *socketio_types.SocketServer,
	notifier *push.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var req struct {
			ToEmail  string `json:"to_email"`
			Exercise string `json:"exercise"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		challenger, err := utils.FindUserByEmail(db, email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenger account not found"})
			return
		}

		opponentEmail := utils.NormalizeEmail(req.ToEmail)
		if opponentEmail == "" || opponentEmail == challenger.Email {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opponent"})
			return
		}

		opponent, err := utils.FindUserByEmail(db, opponentEmail)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}

		ch := postgres.Challenge{
			ChallengerEmail: challenger.Email,
			ChallengerName:  challenger.FullName,
			OpponentEmail:   opponent.Email,
			Exercise:        req.Exercise,
		}
		if err := db.Create(&ch).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send challenge"})
			return
		}

		invitation := gin.H{
			"challenge_id":    ch.ID,
			"room_id":         ch.RoomID,
			"challenger":      ch.ChallengerName,
			"challenger_mail": ch.ChallengerEmail,
			"exercise":        ch.Exercise,
			"status":          ch.Status,
			"created_at":      ch.CreatedAt,
		}

		// Live delivery first, push + inbox as fallback. Either way the record
		// is durable so the sender gets a success.
		if conn, online := sio.GetConnection(opponent.Email); online {
			conn.Emit("new-challenge", invitation)
			log.Printf("[CHALLENGE] Invitation %s delivered live to %s", ch.ID, opponent.Email)
		} else {
			notification := postgres.Notification{
				UserEmail: opponent.Email,
				Title:     "New challenge!",
				Message:   ch.ChallengerName + " challenged you: " + ch.Exercise,
			}
			if err := db.Create(&notification).Error; err != nil {
				log.Printf("[CHALLENGE-ERROR] Error storing notification for %s: %v", opponent.Email, err)
			}
			if len(opponent.PushSubscription) > 0 {
				if err := notifier.Send(opponent.PushSubscription, invitation); err != nil {
					log.Printf("[CHALLENGE-ERROR] Push delivery to %s failed: %v", opponent.Email, err)
				}
			}
			log.Printf("[CHALLENGE] %s offline, invitation %s queued for push/inbox", opponent.Email, ch.ID)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Challenge sent successfully",
			"challenge_id": ch.ID,
			"room_id":      ch.RoomID,
		})
	}
}

// @Summary List pending challenges received by the authenticated user
// @Tags challenges
// @Produce json
// @Success 200 {array} object{challenge_id=string,challenger=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/challenges/received [get]
// @Security ApiKeyAuth
func GetReceivedChallenges(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var challenges []postgres.Challenge
		result := db.Where("opponent_email = ? AND status = ?",
			utils.NormalizeEmail(email), postgres.ChallengeStatusPending).
			Order("created_at DESC").
			Find(&challenges)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
			return
		}

		response := make([]gin.H, 0, len(challenges))
		for _, ch := range challenges {
			response = append(response, gin.H{
				"challenge_id":     ch.ID,
				"challenger_email": ch.ChallengerEmail,
				"challenger_name":  ch.ChallengerName,
				"room_id":          ch.RoomID,
				"exercise":         ch.Exercise,
				"status":           ch.Status,
				"created_at":       ch.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Challenge history of the authenticated user
// @Description All challenges the user took part in, newest first. Records are
// @Description never deleted, completed ones carry the winner.
// @Tags challenges
// @Produce json
// @Success 200 {array} object{challenge_id=string,status=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/challenges/history [get]
// @Security ApiKeyAuth
func GetChallengeHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}
		normalized := utils.NormalizeEmail(email)

		var challenges []postgres.Challenge
		result := db.Where("challenger_email = ? OR opponent_email = ?", normalized, normalized).
			Order("created_at DESC").
			Find(&challenges)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenge history"})
			return
		}

		response := make([]gin.H, 0, len(challenges))
		for _, ch := range challenges {
			response = append(response, gin.H{
				"challenge_id":     ch.ID,
				"challenger_email": ch.ChallengerEmail,
				"challenger_name":  ch.ChallengerName,
				"opponent_email":   ch.OpponentEmail,
				"exercise":         ch.Exercise,
				"status":           ch.Status,
				"winner_email":     ch.WinnerEmail,
				"created_at":       ch.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, response)
	}
}
