package transport

import (
	"encoding/json"
	"net/http"

	"catan-server/internal/obs"
	"catan-server/internal/room"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"nhooyr.io/websocket"
)

// Server is the HTTP entrypoint: a trivial health response at the root
// path, a WebSocket endpoint, and a Prometheus /metrics endpoint.
type Server struct {
	mux   *http.ServeMux
	lobby *room.Lobby
	log   *obs.Logger
}

// New builds a Server with all routes registered.
func New(lobby *room.Lobby, log *obs.Logger) *Server {
	s := &Server{
		mux:   http.NewServeMux(),
		lobby: lobby,
		log:   log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /", s.handleHealth)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type healthPayload struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthPayload{Status: "ok", Service: "catan-server"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for dev
	})
	if err != nil {
		s.log.Error("websocket accept", "err", err)
		return
	}
	defer ws.Close(websocket.StatusNormalClosure, "")

	c := newConn(ws, r.Context(), s.lobby, s.log)
	c.handle()
}
