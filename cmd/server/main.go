package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/thoughtcloud/thoughtcloud/internal/config"
	"github.com/thoughtcloud/thoughtcloud/internal/db"
	"github.com/thoughtcloud/thoughtcloud/internal/handler"
	"github.com/thoughtcloud/thoughtcloud/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg := config.Load()
	ctx := context.Background()

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	authSvc, err := service.NewAuthService(pg, cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init auth service: %v", err)
	}

	blobStore, err := newBlobStore(ctx, cfg.Media)
	if err != nil {
		log.Fatalf("failed to init media store: %v", err)
	}
	mediaSvc := service.NewMediaService(blobStore, cfg.Media.PublicBaseURL)
	postSvc := service.NewPostService(pg, mediaSvc)

	router := gin.Default()
	if cfg.Server.CORSOrigins != "" {
		router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.CORSOrigins, ",")))
	}
	if cfg.Media.Driver == "local" {
		router.Static("/uploads", cfg.Media.UploadDir)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	postHandler := handler.NewPostHandler(postSvc)

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/auth/user", authHandler.Me)

	router.GET("/posts", postHandler.List)
	router.GET("/posts/:id", postHandler.Get)

	authed := router.Group("", handler.AuthMiddleware(authSvc))
	authed.POST("/posts", postHandler.Create)
	authed.PUT("/posts/:id", postHandler.Update)
	authed.DELETE("/posts/:id", postHandler.Delete)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newBlobStore(ctx context.Context, cfg config.MediaConfig) (service.BlobStore, error) {
	switch cfg.Driver {
	case "s3":
		return service.NewS3BlobStore(ctx, cfg)
	default:
		return service.NewLocalBlobStore(cfg)
	}
}
