package main

import (
	"log"

	"attendance-backend/internal/config"
	"attendance-backend/internal/database"
	"attendance-backend/internal/server"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	app := server.New(cfg, db, server.Options{AccessLog: true})

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
