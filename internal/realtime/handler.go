package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hbenali/childguard/internal/config"
	"github.com/hbenali/childguard/internal/features/auth"
	"github.com/hbenali/childguard/internal/pkg/response"
	"github.com/hbenali/childguard/internal/pkg/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	hub      *Hub
	userRepo *auth.Repository
	config   *config.Config
}

func NewHandler(hub *Hub, userRepo *auth.Repository, cfg *config.Config) *Handler {
	return &Handler{hub: hub, userRepo: userRepo, config: cfg}
}

// ServeWS upgrades the connection and subscribes it to the caller's user,
// role and village addresses. Browsers cannot set an Authorization header on
// a websocket handshake, so the token rides in the query string.
func (h *Handler) ServeWS(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	claims, err := token.Validate(tokenString, h.config.JWTSecret)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
		return
	}

	oid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
		return
	}

	user, err := h.userRepo.GetUserByID(c.Request.Context(), oid)
	if err != nil {
		response.Unauthorized(c, "User not found", "USER_NOT_FOUND")
		return
	}
	if !user.IsActive {
		response.Forbidden(c, "Account is deactivated", "ACCOUNT_INACTIVE")
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	addresses := []string{
		UserAddress(user.ID.Hex()),
		RoleAddress(string(user.Role)),
	}
	if user.Village != "" {
		addresses = append(addresses, VillageAddress(user.Village))
	}
	h.hub.Register(ws, addresses...)

	go h.readLoop(ws)
}

// readLoop drains the connection until the peer goes away. Clients never
// send application messages; the loop only notices disconnects.
func (h *Handler) readLoop(ws *websocket.Conn) {
	defer h.hub.Unregister(ws)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

func RegisterRoutes(router *gin.RouterGroup, hub *Hub, userRepo *auth.Repository, cfg *config.Config) {
	handler := NewHandler(hub, userRepo, cfg)
	router.GET("/ws", handler.ServeWS)
}
