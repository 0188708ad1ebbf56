package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	watchPongWait  = 60 * time.Second
	watchReadLimit = 512
)

// handleWatchStore streams the store's snapshot over a WebSocket: once on
// connect and again after every change. Changes that land while a write is
// in flight are coalesced into the next snapshot.
//
// The session stays live for as long as the connection does: every ping
// and pong marks it as used.
func (s *Server) handleWatchStore(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r)
	sessionID := sessionIDFrom(r)

	// A session created for this request only reaches the client through
	// the handshake response.
	var responseHeader http.Header
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		responseHeader = http.Header{"Set-Cookie": cookies}
	}

	conn, err := s.upgrader.Upgrade(w, r, responseHeader)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	changed := make(chan struct{}, 1)
	unsubscribe := st.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	pingPeriod := s.config.WatchPingPeriod
	pongWait := watchPongWait
	if pingPeriod >= pongWait {
		pongWait = pingPeriod * 10 / 9
	}
	writeWait := s.config.WriteTimeout

	// The client never sends data; reading detects close and handles pongs.
	go func() {
		defer cancel()
		conn.SetReadLimit(watchReadLimit)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			s.sessions.Touch(sessionID)
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	log := s.logger.With("store", st.ID())
	log.Debug("watch started")
	defer log.Debug("watch stopped")

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	deadline := func() time.Time {
		if writeWait <= 0 {
			return time.Time{}
		}
		return time.Now().Add(writeWait)
	}
	send := func() error {
		conn.SetWriteDeadline(deadline())
		return conn.WriteJSON(snapshot(st))
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(deadline())
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		case <-changed:
			if err := send(); err != nil {
				log.Debug("watch write failed", "error", err)
				return
			}
		case <-ticker.C:
			if !s.sessions.Touch(sessionID) {
				// Evicted at capacity; the client reconnects into a new session.
				log.Debug("session gone, closing watch")
				conn.SetWriteDeadline(deadline())
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session expired"))
				return
			}
			conn.SetWriteDeadline(deadline())
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
