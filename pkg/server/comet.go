package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// CometUpdate is one comet channel version change pushed to clients.
type CometUpdate struct {
	GUID    string `json:"guid"`
	Version int64  `json:"version"`
}

// CometHub fans comet version updates out to connected pages.
type CometHub struct {
	mu   sync.Mutex
	subs map[chan CometUpdate]struct{}
}

func newCometHub() *CometHub {
	return &CometHub{subs: make(map[chan CometUpdate]struct{})}
}

// Publish delivers a version update to every connected page. Slow
// subscribers drop updates rather than block the producer; clients
// reconcile on the next update they do receive.
func (h *CometHub) Publish(guid string, version int64) {
	update := CometUpdate{GUID: guid, Version: version}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

func (h *CometHub) subscribe() chan CometUpdate {
	ch := make(chan CometUpdate, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *CometHub) unsubscribe(ch chan CometUpdate) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleComet upgrades the connection and streams comet version updates
// until the client goes away.
func (s *Server) handleComet(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("comet upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.metrics.cometConnections.Inc()
	defer s.metrics.cometConnections.Dec()

	updates := s.comet.subscribe()
	defer s.comet.unsubscribe(updates)

	// reader goroutine: drains control frames and signals disconnect
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case update := <-updates:
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
