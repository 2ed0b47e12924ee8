package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mkalvans/cinetrack/internal/server"
	"github.com/mkalvans/cinetrack/internal/server/config"
)

func main() {

	ctx := context.Background()

	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
