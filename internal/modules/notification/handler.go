package notification

import (
	"log/slog"
	"net/http"
	"strings"

	"alxtravel/internal/pkg/jwt"
	"alxtravel/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler accepts websocket upgrades from allowedOrigins; an empty list allows any origin.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/notifications", h.Connect)
}

// Connect upgrades to a websocket. Browsers cannot set headers on the handshake, so the
// token comes from ?token= (a Bearer header is accepted too).
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "user_id", claims.UserID, "error", err)
		return
	}

	h.hub.Register(claims.UserID, conn)
	slog.Info("notification socket connected", "user_id", claims.UserID)

	defer func() {
		h.hub.Unregister(claims.UserID, conn)
		slog.Info("notification socket closed", "user_id", claims.UserID)
	}()

	// Inbound frames are ignored; reading keeps pings/close frames flowing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
