package routes

import (
	"fitflow/controllers"
	"fitflow/middleware"
	"fitflow/services/push"
	"fitflow/services/redis"
	socketio_types "fitflow/services/socket_io/types"
	utils "fitflow/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient,
	sio *socketio_types.SocketServer, notifier *push.Notifier) {

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/allusers", controllers.GetAllUsers(db))

	api.GET("/users/:email", controllers.GetUserPublicInfo(db))

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PATCH("/update", controllers.UpdateUserInfo(db))

		// Challenges (REST side; the live flow happens over socket.io)
		authentication.POST("/send-challenge", controllers.SendChallenge(db, sio, notifier))

		authentication.GET("/challenges/received", controllers.GetReceivedChallenges(db))

		authentication.GET("/challenges/history", controllers.GetChallengeHistory(db))

		// Notifications
		authentication.GET("/notifications", controllers.GetNotifications(db))

		authentication.POST("/notifications/mark-read", controllers.MarkNotificationsRead(db))

		authentication.GET("/notifications/unread-count", controllers.GetUnreadNotificationCount(db))

		authentication.POST("/subscribe", controllers.SaveSubscription(db))

		// Workout plans and activity
		authentication.POST("/workout-plan", controllers.GenerateWorkoutPlan(db, redisClient))

		authentication.GET("/workout-plan", controllers.GetWorkoutPlan(db, redisClient))

		authentication.POST("/workout-log", controllers.LogWorkout(db))

		authentication.GET("/workout-logs", controllers.GetWorkoutLogs(db))

		authentication.POST("/exercise-session", controllers.SaveExerciseSession(db))

		authentication.GET("/exercise-sessions", controllers.GetExerciseSessions(db))

		// Assistant
		authentication.POST("/ask", controllers.AskAssistant())
	}
}
