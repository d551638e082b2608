package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-media-service/config"
	"github.com/tnqbao/gau-media-service/http/controller"
	routes "github.com/tnqbao/gau-media-service/http/route"
	infraPkg "github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()

	ctx := context.Background()
	shutdownTelemetry := infraPkg.InitTelemetry(ctx, cfg.EnvConfig)
	defer shutdownTelemetry(ctx)

	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)

	if err := infra.Minio.EnsureSourceBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure source bucket: %v", err)
	}

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
