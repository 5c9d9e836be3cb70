package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/banho/internal/app"
	"github.com/MrSnakeDoc/banho/internal/config"
)

func main() {
	// a .env file is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("banho: invalid configuration: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("banho failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("banho stopped with error: %v", err)
	}
}
