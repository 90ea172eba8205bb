package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"festora-chat/config"
	"festora-chat/internal/chat"
	"festora-chat/internal/events"
	"festora-chat/internal/handler"
	"festora-chat/internal/inquiry"
	"festora-chat/internal/middleware"
	"festora-chat/internal/outbox"
	festoraredis "festora-chat/internal/redis"
	"festora-chat/internal/repository"
	"festora-chat/internal/storage"
	"festora-chat/internal/transport"
	"festora-chat/internal/websocket"
	"festora-chat/pkg/database"
	"festora-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == "release" {
		mode = logger.ProductionMode
		gin.SetMode(gin.ReleaseMode)
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	db := database.DB

	redisClient := festoraredis.NewClient(festoraredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Repositories
	messageStore := repository.NewMessageStore(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Event bus + outbox
	bus := events.NewRedisBus(redisClient)
	if err := bus.Start(); err != nil {
		log.Fatalf("Failed to start event bus: %v", err)
	}
	defer bus.Stop()
	outbox.NewRunner(outbox.DefaultProcessor(eventRepo, bus)).Start(ctx)

	// Messaging core
	tracker := chat.NewDeliveryTracker(messageStore, eventRepo, l)
	index := chat.NewConversationIndex(messageStore, participantRepo)
	bridge := transport.NewRedisBridge(redisClient, l)
	defer bridge.Close()
	composer := chat.NewComposer(tracker, bridge, l)
	go chat.NewAckPump(tracker, bridge, l).Run(ctx)
	linkage := inquiry.NewLinkage(inquiryRepo, eventRepo, l)

	// WebSocket fan-out
	hub := websocket.NewHub()
	go hub.Run(ctx)
	go websocket.NewRedisBridge(redisClient, hub, l).Run(ctx)

	// Handlers
	messageHandler := handler.NewMessageHandler(composer, tracker)
	conversationHandler := handler.NewConversationHandler(index)
	inquiryHandler := handler.NewInquiryHandler(linkage)
	wsHandler := websocket.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(l))
	r.Use(middleware.ErrorHandler(l))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		v1.POST("/messages", messageHandler.Send)
		v1.POST("/messages/:id/delivered", messageHandler.MarkDelivered)
		v1.POST("/messages/:id/read", messageHandler.MarkRead)
		v1.DELETE("/messages/:id", messageHandler.Delete)

		v1.GET("/conversations", conversationHandler.List)
		v1.GET("/conversations/unread", conversationHandler.Unread)
		v1.GET("/conversations/:participantId", conversationHandler.Get)

		v1.POST("/inquiries", inquiryHandler.Open)
		v1.GET("/inquiries", inquiryHandler.List)
		v1.POST("/inquiries/:id/answered", inquiryHandler.MarkAnswered)
		v1.POST("/inquiries/:id/convert", inquiryHandler.Convert)
		v1.POST("/inquiries/:id/close", inquiryHandler.Close)

		v1.GET("/ws", wsHandler.Connect)
	}

	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PresignTTL: time.Duration(cfg.PresignTTLMin) * time.Minute,
		})
		if err != nil {
			log.Fatalf("Failed to init s3 client: %v", err)
		}
		v1.POST("/uploads/presign", handler.NewUploadHandler(s3Client).Presign)
	}

	log.Printf("Starting server on port %s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
