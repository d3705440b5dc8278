package main

import (
	"fmt"
	"log"
	"net/http"

	"paste-swamp/internal/audit"
	"paste-swamp/internal/config"
	"paste-swamp/internal/engine"
	"paste-swamp/internal/handlers"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/utils"
	"paste-swamp/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	metrics := utils.NewMetricsCollector()
	recorder := audit.NewRecorder()

	// Initialize actor system and store engine
	system := actor.NewActorSystem()
	storeEngine := engine.NewEngine(system, recorder, metrics, cfg.AdminSeed)

	// Websocket hub for live notifications
	hub := websocket.NewHub()
	go hub.Run()

	server := handlers.NewServer(system, storeEngine, hub, recorder, metrics, cfg.Server.RequestTimeout)
	guard := middleware.NewIPRestrictionGuard(system.Root, storeEngine.GetModerationActor(), cfg.Server.RequestTimeout)
	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, server.Routes(guard, corsConfig)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
