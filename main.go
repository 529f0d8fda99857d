package main

import (
	"log"
	"os"

	"fitflow/config"
	_ "fitflow/config/swagger"
	"fitflow/middleware"
	"fitflow/routes"
	"fitflow/services/push"
	"fitflow/services/redis"
	"fitflow/services/socket_io"
	socketio_types "fitflow/services/socket_io/types"
	challengesync "fitflow/sync"
	"fitflow/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title FitFlow API
// @version 1.0
// @description Gin-Gonic server for the FitFlow fitness API
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	syncManager := challengesync.NewSyncManager(redisClient, gormDB)
	notifier := push.NewNotifier()
	if !notifier.Configured() {
		log.Println("Web push not configured, falling back to stored notifications only")
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	sio := (*socket_io.MySocketServer)(socketio_types.NewSocketServer())
	sio.Start(r, gormDB, redisClient, syncManager)

	routes.SetupRoutes(r, gormDB, redisClient, (*socketio_types.SocketServer)(sio), notifier)

	if sched, err := workers.StartCleanupScheduler(gormDB); err != nil {
		log.Printf("Warning: cleanup scheduler not started: %v", err)
	} else {
		defer sched.Shutdown()
	}

	// Configure port
	port := os.Getenv("PORT")
	if port == "" && os.Getenv("USE_HTTPS") == "true" {
		port = "443"
	} else if port == "" {
		port = "8080"
	}

	if os.Getenv("USE_HTTPS") == "true" {
		certFile := os.Getenv("TLS_CERT_FILE")
		keyFile := os.Getenv("TLS_KEY_FILE")

		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
