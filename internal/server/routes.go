package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/tanmayvb/conclave/internal/config"
	"github.com/tanmayvb/conclave/internal/metrics"
	"github.com/tanmayvb/conclave/internal/signaling"
)

// NewRouter wires the HTTP surface: websocket upgrade, health, room
// info, prometheus metrics, CORS and access logging.
func NewRouter(hub *signaling.Hub, cfg config.Config) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods(http.MethodGet)
	r.HandleFunc("/ws", ServeWs(hub, cfg.AllowedOrigin))
	r.HandleFunc("/rooms/{id}", roomInfoHandler(hub)).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	return handlers.LoggingHandler(os.Stdout, c.Handler(r))
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Signaling server is healthy."))
}

// roomInfoHandler serves a read-only room snapshot. The lookup goes
// through the hub loop, so it never races a mutation. The shared
// secret is not part of the view.
func roomInfoHandler(hub *signaling.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := hub.Snapshot(mux.Vars(r)["id"])
		if snap == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snap)
	}
}

// ServeWs returns an http.HandlerFunc that handles websocket requests.
// It takes the hub as a dependency.
func ServeWs(hub *signaling.Hub, allowedOrigin string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  64 * 1024, // 64 KB
		WriteBufferSize: 64 * 1024, // 64 KB

		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("failed to upgrade connection", "err", err)
			return
		}

		client := signaling.NewClient(hub, conn)
		hub.Register(client)

		// Start the client's read and write pumps in separate
		// goroutines. These handle the connection's lifecycle.
		go client.WritePump()
		go client.ReadPump()
	}
}
