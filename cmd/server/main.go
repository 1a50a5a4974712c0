package main

import (
	"log"

	httpapi "reefopoly/internal/api/http"
	"reefopoly/internal/api/ws"
	"reefopoly/internal/config"
	"reefopoly/internal/room"
	"reefopoly/internal/store"
)

// @title Reefopoly Match Server API
// @version 1.0
// @description REST + WebSocket API for autonomous-agent board game matches (Go + Gin)
// @BasePath /
func main() {
	cfg := config.Load()

	mem := store.NewMemoryStore()
	hub := ws.NewHub()

	var archive room.Archive
	if cfg.SQLitePath != "" {
		sq, err := store.OpenSQLiteArchive(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("sqlite archive: %v", err)
		}
		defer sq.Close()
		archive = sq
	}

	var stats room.Stats
	if cfg.RedisURL != "" {
		rs := store.NewRedisStats(cfg.RedisURL)
		defer rs.Close()
		stats = rs
	} else {
		stats = store.NewMemoryStats()
	}

	rm := room.NewManager(mem, cfg, hub, archive, stats)
	hub.SetSource(rm)

	r := httpapi.NewRouter(rm, hub, cfg)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
