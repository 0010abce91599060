package main

import (
	"fmt"
	"log"

	"backend/configs"
	"backend/middlewares"
	"backend/pkg/storage"
	"backend/routes"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	if err := configs.ConnectDB(cfg); err != nil {
		log.Fatal(err)
	}
	db := configs.DB()

	// migrate + seed
	if err := configs.SetupDatabase(); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if err := configs.SeedProducts(); err != nil {
		log.Fatalf("seed products failed: %v", err)
	}

	// uploaded images
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	// live order feed for admin dashboards
	feed := ws.NewOrderFeed()
	go feed.Run()

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(r, db, cfg, store, feed)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
