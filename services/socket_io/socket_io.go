package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitflow/services/redis"
	"fitflow/services/socket_io/handlers"
	socketio_types "fitflow/services/socket_io/types"
	socketio_utils "fitflow/services/socket_io/utils"
	challengesync "fitflow/sync"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB,
	redisClient *redis.RedisClient, syncManager *challengesync.SyncManager) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, email := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		server := (*socketio_types.SocketServer)(sio)

		// Bind presence: last register wins, a previous connection of the same
		// user becomes unreachable but is not closed
		server.AddConnection(email, client)
		fmt.Println("An individual just connected!: ", email)

		// Explicit presence re-registration
		client.On("register", handlers.HandleRegister(client, email, server))

		// Challenge invitation responses
		client.On("accept-challenge", handlers.HandleAcceptChallenge(client, db, email, server))
		client.On("decline-challenge", handlers.HandleDeclineChallenge(client, db, email, server))

		// Challenge room membership and setup negotiation
		client.On("join-challenge-room", handlers.HandleJoinChallengeRoom(redisClient, client, db, email, server))
		client.On("setup-change", handlers.HandleSetupChange(redisClient, client, db, email, server))

		// Ready barrier and contest control
		client.On("mark-ready", handlers.HandleMarkReady(client, server))
		client.On("start-now", handlers.HandleStartNow(redisClient, client, db, email, server))
		client.On("start-game", handlers.HandleStartGame(redisClient, client, server))

		// In-game relay
		client.On("rep-update", handlers.HandleRepUpdate(redisClient, client, email, server))
		client.On("finish-game", handlers.HandleFinishGame(redisClient, client, db, email, server, syncManager))

		// WebRTC session negotiation passthrough
		client.On("offer", handlers.HandleSignal("offer", client, server))
		client.On("answer", handlers.HandleSignal("answer", client, server))
		client.On("candidate", handlers.HandleSignal("candidate", client, server))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(redisClient, client, email, server))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
