// Package web serves the marketing site and operations dashboard. All data
// comes from the JSON API through api.Client; live updates are pushed over a
// websocket.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
	"github.com/wattr-labs/wattr-demo/internal/web/api"
)

//go:embed templates/*.html
var templateFS embed.FS

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Options struct {
	RefreshInterval time.Duration
	SceneFPS        int
}

type message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// wsClient serialises writes to one connection. Each connection animates
// its own scene so hover stays local to the visitor.
type wsClient struct {
	conn  *websocket.Conn
	scene *Scene
	mu    sync.Mutex
}

func (c *wsClient) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(v)
}

type Server struct {
	mux       *http.ServeMux
	tmpl      *template.Template
	api       *api.Client
	view      service.FacilityView
	viewMu    sync.RWMutex
	opts      Options
	clients   map[*wsClient]bool
	clientsMu sync.RWMutex
	broadcast chan message
}

func New(client *api.Client, opts Options) (*Server, error) {
	funcMap := template.FuncMap{
		"toJSON": toJSON,
		"pct":    func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) + "%" },
	}
	tmpl, err := template.New("base").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 3 * time.Second
	}
	if opts.SceneFPS <= 0 {
		opts.SceneFPS = 10
	}

	s := &Server{
		mux:       http.NewServeMux(),
		tmpl:      tmpl,
		api:       client,
		opts:      opts,
		clients:   make(map[*wsClient]bool),
		broadcast: make(chan message, 256),
	}
	s.routes()
	return s, nil
}

// Start runs the broadcast, refresh and scene loops until ctx is done.
func (s *Server) Start(ctx context.Context) {
	s.refreshScene(ctx)
	go s.handleBroadcast(ctx)
	go s.periodicUpdate(ctx)
	go s.animate(ctx)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("POST /controls", s.handleControls)
	s.mux.HandleFunc("GET /technology", s.handleTechnology)
	s.mux.HandleFunc("GET /contact", s.handleContactForm)
	s.mux.HandleFunc("POST /contact", s.handleContactSubmit)
	s.mux.HandleFunc("GET /noc", s.handleNOC)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/stats", s.handleAPIStats)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &wsClient{conn: conn, scene: NewScene(time.Now())}

	s.clientsMu.Lock()
	c.scene.SetView(s.currentView())
	s.clients[c] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, c)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	stats, err := s.getStats(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("initial stats unavailable")
	}
	if err := c.send(message{Type: "init", Data: stats}); err != nil {
		return
	}

	for {
		var in struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		}
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		switch in.Type {
		case "hover":
			c.scene.Hover(in.ID)
		case "select":
			if _, err := s.api.SelectRack(r.Context(), in.ID); err != nil {
				log.Warn().Err(err).Str("rack", in.ID).Msg("rack select failed")
				continue
			}
			s.refreshScene(r.Context())
		}
	}
}

func (s *Server) handleBroadcast(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.broadcast:
			s.clientsMu.RLock()
			var dead []*wsClient
			for c := range s.clients {
				if err := c.send(msg); err != nil {
					dead = append(dead, c)
				}
			}
			s.clientsMu.RUnlock()

			if len(dead) > 0 {
				s.clientsMu.Lock()
				for _, c := range dead {
					c.conn.Close()
					delete(s.clients, c)
				}
				s.clientsMu.Unlock()
			}
		}
	}
}

func (s *Server) publish(msg message) {
	select {
	case s.broadcast <- msg:
	default:
		log.Warn().Str("type", msg.Type).Msg("broadcast queue full, dropping message")
	}
}

func (s *Server) periodicUpdate(ctx context.Context) {
	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		s.refreshScene(ctx)
		stats, err := s.getStats(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("stats refresh failed")
			continue
		}
		s.publish(message{Type: "update", Data: stats})
	}
}

func (s *Server) animate(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.SceneFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.clientsMu.RLock()
			clients := make([]*wsClient, 0, len(s.clients))
			for c := range s.clients {
				clients = append(clients, c)
			}
			s.clientsMu.RUnlock()

			for _, c := range clients {
				if err := c.send(message{Type: "scene", Data: c.scene.Step(now)}); err != nil {
					log.Debug().Err(err).Msg("scene frame not sent")
				}
			}
		}
	}
}

func (s *Server) refreshScene(ctx context.Context) {
	view, err := s.api.Racks(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("rack refresh failed")
		return
	}
	s.viewMu.Lock()
	s.view = view
	s.viewMu.Unlock()

	s.clientsMu.RLock()
	for c := range s.clients {
		c.scene.SetView(view)
	}
	s.clientsMu.RUnlock()
}

func (s *Server) currentView() service.FacilityView {
	s.viewMu.RLock()
	defer s.viewMu.RUnlock()
	return s.view
}

// Stats is the payload of init and update messages and /api/stats.
type Stats struct {
	Controls  store.State     `json:"controls"`
	Overview  domain.Overview `json:"overview"`
	Dashboard domain.Snapshot `json:"dashboard"`
	Timestamp int64           `json:"timestamp"`
}

func (s *Server) getStats(ctx context.Context) (Stats, error) {
	st := Stats{Timestamp: time.Now().Unix()}
	var errs []error
	var err error
	if st.Controls, err = s.api.Controls(ctx); err != nil {
		errs = append(errs, err)
	}
	if st.Overview, err = s.api.Overview(ctx); err != nil {
		errs = append(errs, err)
	}
	if st.Dashboard, err = s.api.Dashboard(ctx); err != nil {
		errs = append(errs, err)
	}
	return st, errors.Join(errs...)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	writeJSON(w, http.StatusOK, map[string]string{"status": s.status(ctx)})
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := s.getStats(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) status(ctx context.Context) string {
	if err := s.api.Health(ctx); err == nil {
		return "online"
	}
	return "offline"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func toJSON(v any) template.JS {
	b, _ := json.Marshal(v)
	return template.JS(b)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// clientIP is the remote host without the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
