package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/linkhive/socialgraph/common/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced upstream at the edge proxy
		return true
	},
}

// Server handles WebSocket upgrades
type Server struct {
	hub *Hub
	log *logger.Logger
}

// NewServer creates a new Server instance
func NewServer(hub *Hub, log *logger.Logger) *Server {
	return &Server{hub: hub, log: log}
}

// HandleWebSocket upgrades the connection and registers the client
// with its initial topic set.
// URL: /ws?topics=users/{id}/notifications,feed/{id}/post
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	topics := splitTopics(r.URL.Query().Get("topics"))
	if len(topics) == 0 {
		http.Error(w, "topics query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(s.hub, conn, topics)
	s.hub.register <- client

	s.log.Info("websocket connected", "remote", r.RemoteAddr, "topics", len(topics))

	go client.writePump()
	go client.readPump()
}

func splitTopics(raw string) []string {
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
