package main

import (
	"context"
	"log"

	"github.com/gpai/case-portal/internal/server"
	"github.com/gpai/case-portal/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	app.Run(ctx)
}
