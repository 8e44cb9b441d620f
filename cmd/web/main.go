package main

import (
	"context"
	"log"

	"users-page-service/cmd/web/app"
	"users-page-service/internal/infrastructure"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	ctx, stop := infrastructure.WithSignal(context.Background())
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}
