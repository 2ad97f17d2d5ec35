// Package web serves the local dashboard: slot contents, command
// history, usage stats and a live WebSocket event feed.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"clipdeck/clip"
	"clipdeck/menu"
	"clipdeck/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local dashboard only
	},
}

// Server represents the web server. It never touches the clipboard
// store directly: the agent pushes slot snapshots after every handled
// command, so no locking leaks into the core.
type Server struct {
	db   *storage.DB
	port int
	hub  *Hub

	mu     sync.RWMutex
	slots  []clip.Slot
	status string
}

// NewServer creates a new web server. db may be nil when the journal is
// unavailable; history and stats endpoints then report an error.
func NewServer(db *storage.DB, port int) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:     db,
		port:   port,
		hub:    hub,
		status: "idle",
	}
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/slots", s.handleSlots)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/", s.handleHistory)
	mux.HandleFunc("/ws", s.handleWebSocket)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf("localhost:%d", s.port)
	slog.Info("Starting web server", "url", fmt.Sprintf("http://%s", addr))

	return http.ListenAndServe(addr, mux)
}

// UpdateSlots replaces the published slot snapshot and notifies clients.
func (s *Server) UpdateSlots(slots []clip.Slot) {
	s.mu.Lock()
	s.slots = slots
	s.mu.Unlock()

	s.hub.BroadcastMessage(Message{Type: MessageTypeSlots, Data: slots})
}

// UpdateStatus publishes the machine's current state.
func (s *Server) UpdateStatus(state string) {
	s.mu.Lock()
	s.status = state
	s.mu.Unlock()

	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: map[string]string{"state": state},
	})
}

// BroadcastResult pushes a handled command to the live feed.
func (s *Server) BroadcastResult(r menu.Result) {
	s.hub.BroadcastMessage(Message{Type: MessageTypeResult, Data: r})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
