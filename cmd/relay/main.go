package main

import (
	"log"

	"supportdesk/internal/config"
	"supportdesk/internal/relay"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()

	if err := relay.New(cfg).Run(); err != nil {
		log.Fatalf("Relay error: %v", err)
	}
}
