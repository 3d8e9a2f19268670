package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"saasmetrics/backend/config"
	"saasmetrics/backend/database"
	"saasmetrics/backend/middlewares"
	"saasmetrics/backend/routes"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg.DatabaseURL)
	database.EnsureSchema()

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.Use(middlewares.CORS())
	r.Use(middlewares.RequestID())
	routes.Register(r, cfg)

	log.Printf("server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
