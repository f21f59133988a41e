package main

import (
	"log"

	"eventhub/config"
	"eventhub/internal/auth"
	"eventhub/internal/database"
	"eventhub/internal/handler"
	"eventhub/internal/middleware"
	"eventhub/internal/repository"
	"eventhub/internal/service"
	"eventhub/pkg/clock"
	"eventhub/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	defer logger.L.Sync()

	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	sessions := auth.NewRedisSessionStore(rdb)
	verifier := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, sessions)

	eventRepo := repository.NewEventRepository(pool)
	eventService := service.NewEventService(eventRepo, cfg.Server.BaseURL, clock.System())
	eventHandler := handler.NewEventHandler(eventService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	eventHandler.RegisterRoutes(router, middleware.RequireAuth(verifier))

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
