package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/linkhive/socialgraph/common/config"
	"github.com/linkhive/socialgraph/common/logger"
	rediscommon "github.com/linkhive/socialgraph/common/redis"
	"github.com/linkhive/socialgraph/common/server"
)

// The gateway bridges the event layer to browsers: it pattern-subscribes
// to every published topic on Redis and fans each event out to the
// WebSocket clients following that topic.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load("gateway")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Service.LogLevel, cfg.Service.LogFormat)

	redisRaw, err := rediscommon.Connect(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisRaw.Close()

	hub := NewHub(log)
	go hub.Run()

	subscriber := NewRedisSubscriber(redisRaw, hub, log)
	go func() {
		if err := subscriber.Start(ctx); err != nil {
			log.Error("redis subscriber failed", "error", err)
			os.Exit(1)
		}
	}()

	wsServer := NewServer(hub, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsServer.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	srv := server.NewLongLived("gateway", cfg.Service.Port, mux, log)
	if err := srv.Start(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
