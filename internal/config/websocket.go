package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
	// ReadLimit caps the size of a single command frame.
	ReadLimit int64
}

// NewWebSocket accepts any origin unless WS_ALLOWED_ORIGINS lists a
// comma-separated allow list.
func NewWebSocket() (*WebSocket, error) {
	var allowed []string
	if origins, ok := os.LookupEnv("WS_ALLOWED_ORIGINS"); ok && origins != "" {
		allowed = strings.Split(origins, ",")
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, o := range allowed {
				if strings.TrimSpace(o) == origin {
					return true
				}
			}
			return false
		},
	}

	ws := &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: 4096,
	}

	return ws, nil
}
