package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-media-service/config"
	"github.com/tnqbao/gau-media-service/consumer/worker"
	infraPkg "github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/repository"
)

func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mediaConsumer := worker.NewMediaConsumer(infra.RabbitMQ.Channel, infra, repo, cfg)
	if err := mediaConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Media consumer: %v", err)
		log.Fatalf("Failed to start Media consumer: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()
	infra.RabbitMQ.Close()

	infra.Logger.InfoWithContextf(ctx, "Consumer exited properly")
}
