package api

import (
	"net/http"
	"strconv"
	"time"

	"notehive/internal/adapters/api/middleware"

	"github.com/gin-gonic/gin"
)

// createMessageRequest carries a new chat message body
type createMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListMessages godoc
// @Summary      List chat messages
// @Description  List a workspace's chat messages newest first, paginated by a before-timestamp cursor. Member only.
// @Tags         messages
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        limit query int false "Page size" default(50) maximum(200)
// @Param        before query string false "RFC 3339 timestamp, only messages created before it"
// @Success      200 {array} message.Message
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /workspaces/{workspaceId}/messages [get]
// @Security     BearerAuth
func (h *Handler) ListMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = v
	}

	var before time.Time
	if raw := c.Query("before"); raw != "" {
		v, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "before must be an RFC 3339 timestamp"})
			return
		}
		before = v
	}

	messages, err := h.messageService.List(c.Request.Context(), user.ID, c.Param("workspaceId"), limit, before)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateMessage godoc
// @Summary      Post a chat message
// @Description  Post a message to the workspace chat. Broadcast to connected sockets and pushed to members' devices. Member only.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        message body createMessageRequest true "Message body"
// @Success      201 {object} message.Message
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /workspaces/{workspaceId}/messages [post]
// @Security     BearerAuth
func (h *Handler) CreateMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	workspaceID := c.Param("workspaceId")

	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Create(c.Request.Context(), user.ID, workspaceID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	go h.chatManager.Broadcast(workspaceID, msg)

	c.JSON(http.StatusCreated, msg)
}

// DeleteMessage godoc
// @Summary      Delete a chat message
// @Description  Delete a chat message. Allowed for the author and the workspace owner.
// @Tags         messages
// @Param        messageId path string true "Message ID"
// @Success      204
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /messages/{messageId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.messageService.Delete(c.Request.Context(), user.ID, c.Param("messageId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
