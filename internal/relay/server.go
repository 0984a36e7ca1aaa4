package relay

import (
	"log"
	"net/http"

	"supportdesk/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Server is the standalone relay process: one Hub, one websocket
// endpoint.
type Server struct {
	cfg    *config.Config
	hub    *Hub
	router *gin.Engine
}

// New creates a relay server.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, hub: NewHub()}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.GET("/ws", s.serveWS)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router = r
	return s
}

// Run starts the relay listener.
func (s *Server) Run() error {
	log.Printf("[relay] listening on %s", s.cfg.Relay.Address())
	return s.router.Run(s.cfg.Relay.Address())
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(s.hub, conn, s.cfg.Relay.SendBuffer)
	go client.WritePump()
	client.ReadPump(s.cfg.Relay.MaxMessageSize)
}
