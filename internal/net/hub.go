package net

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"LocalAnnotator/internal/state"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 8
)

// peer is one connected viewer.
type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to every connected viewer. A viewer whose buffer
// is full is dropped rather than stalling the UI.
type Hub struct {
	source   func() state.Snapshot
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*peer]struct{}
}

// NewHub creates a Hub that reads the current state from source.
func NewHub(source func() state.Snapshot) *Hub {
	return &Hub{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Peers returns the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// add registers p and queues the current snapshot as its first message.
// The snapshot is taken after registration, so no later Publish can miss p.
func (h *Hub) add(p *peer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	data, err := h.encode()
	if err != nil {
		delete(h.peers, p)
		return err
	}
	p.send <- data
	log.Info("[HUB] viewer connected", "remote", p.conn.RemoteAddr().String())
	return nil
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	log.Info("[HUB] viewer removed", "remote", p.conn.RemoteAddr().String())
}

func (h *Hub) encode() ([]byte, error) {
	snap := h.source()
	return json.Marshal(Message{Type: MsgSnapshot, Snapshot: &snap})
}

// Publish sends the current snapshot to every viewer.
func (h *Hub) Publish() {
	data, err := h.encode()
	if err != nil {
		log.Error("[HUB] encode snapshot", "err", err)
		return
	}

	h.mu.RLock()
	var slow []*peer
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			slow = append(slow, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range slow {
		log.Warn("[HUB] dropping slow viewer", "remote", p.conn.RemoteAddr().String())
		h.remove(p)
	}
}

// ServeHTTP upgrades the request to a websocket and streams snapshots,
// starting with the current one.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("[HUB] upgrade failed", "err", err)
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}
	if err := h.add(p); err != nil {
		log.Error("[HUB] encode snapshot", "err", err)
		conn.Close()
		return
	}

	go h.writePump(p)
	h.readPump(p)
}

// readPump only watches for the viewer going away; viewers never write.
func (h *Hub) readPump(p *peer) {
	defer h.remove(p)
	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()
	for {
		select {
		case data, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn("[HUB] write failed", "remote", p.conn.RemoteAddr().String(), "err", err)
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()
	for _, p := range peers {
		h.remove(p)
	}
}

// Server exposes a Hub at /ws and a text summary at /summary.
type Server struct {
	hub     *Hub
	summary func(io.Writer) error
	srv     *http.Server
}

// NewServer builds the mirror server listening on addr.
func NewServer(addr string, hub *Hub, summary func(io.Writer) error) *Server {
	s := &Server{hub: hub, summary: summary}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.hub)
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := s.summary(w); err != nil {
			log.Warn("[HTTP] summary failed", "err", err)
		}
	})
	return mux
}

// Run serves until ctx is done, then shuts down and disconnects viewers.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("[HTTP] mirror listening", "addr", s.srv.Addr)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
