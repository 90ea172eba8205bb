package main

import (
	"log"

	"festora-chat/config"
	"festora-chat/internal/domain/event"
	"festora-chat/internal/domain/inquiry"
	"festora-chat/internal/domain/message"
	"festora-chat/internal/domain/participant"
	"festora-chat/pkg/database"
)

func main() {
	cfg := config.LoadConfig()

	database.Connect(cfg)

	if err := database.DB.AutoMigrate(
		&participant.Participant{},
		&message.Message{},
		&inquiry.Inquiry{},
		&event.OutboxEvent{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Migrations applied")
}
