package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"notehive/internal/domain/message"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatManager tracks the live chat connections of each workspace and fans
// posted messages out to them
type ChatManager struct {
	connections map[string]map[*websocket.Conn]string // workspaceID -> conn -> userID
	mu          sync.RWMutex
}

// NewChatManager creates a new chat connection manager
func NewChatManager() *ChatManager {
	return &ChatManager{connections: make(map[string]map[*websocket.Conn]string)}
}

// Register adds a connection to the workspace's chat room
func (m *ChatManager) Register(workspaceID, userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.connections[workspaceID]; !exists {
		m.connections[workspaceID] = make(map[*websocket.Conn]string)
	}
	m.connections[workspaceID][conn] = userID
	log.Info().Str("workspace_id", workspaceID).Str("user_id", userID).Msg("Chat connection registered")
}

// Unregister removes a connection from the workspace's chat room
func (m *ChatManager) Unregister(workspaceID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conns, exists := m.connections[workspaceID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(m.connections, workspaceID)
		}
	}
}

// Broadcast sends a message to every connection in the workspace's chat room
func (m *ChatManager) Broadcast(workspaceID string, msg *message.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to encode chat message")
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for conn := range m.connections[workspaceID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("Failed to deliver chat message")
		}
	}
}

// inboundChatMessage is what a connected client sends to post to the chat
type inboundChatMessage struct {
	Content string `json:"content"`
}

// HandleChatSocket godoc
// @Summary      Workspace chat socket
// @Description  Open a WebSocket for live chat. Authenticated by session token in the query string; member only.
// @Tags         messages
// @Param        workspaceId path string true "Workspace ID"
// @Param        token query string true "Session token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /ws/workspace/{workspaceId} [get]
func (h *Handler) HandleChatSocket(c *gin.Context) {
	workspaceID := c.Param("workspaceId")

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, err := h.tokens.Validate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, err := h.users.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if _, err := h.workspaceService.Get(c.Request.Context(), workspaceID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade chat connection")
		return
	}
	defer func() {
		h.chatManager.Unregister(workspaceID, conn)
		conn.Close()
	}()

	h.chatManager.Register(workspaceID, user.ID, conn)

	for {
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			log.Info().Str("workspace_id", workspaceID).Str("user_id", user.ID).Msg("Chat connection closed")
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var inbound inboundChatMessage
		if err := json.Unmarshal(raw, &inbound); err != nil || inbound.Content == "" {
			log.Warn().Str("user_id", user.ID).Msg("Ignoring malformed chat payload")
			continue
		}

		msg, err := h.messageService.Create(c.Request.Context(), user.ID, workspaceID, inbound.Content)
		if err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to post chat message")
			continue
		}
		h.chatManager.Broadcast(workspaceID, msg)
	}
}
