package api

import (
	"net/http"
	"strings"

	"notehive/internal/adapters/api/middleware"
	"notehive/internal/domain/note"

	"github.com/gin-gonic/gin"
)

// noteTargetRequest names the workspace a share or copy moves a note into
type noteTargetRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
}

// CreateNote godoc
// @Summary      Create a note
// @Description  Create a note in a workspace the authenticated user belongs to
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        note body note.CreateNoteRequest true "Note creation request"
// @Success      201 {object} note.Note
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /notes [post]
// @Security     BearerAuth
func (h *Handler) CreateNote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req note.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.noteService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}

// GetNote godoc
// @Summary      Get a note
// @Description  Get a note the authenticated user owns or can see through workspace membership
// @Tags         notes
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Success      200 {object} note.Note
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /notes/{noteId} [get]
// @Security     BearerAuth
func (h *Handler) GetNote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	n, err := h.noteService.Get(c.Request.Context(), c.Param("noteId"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// UpdateNote godoc
// @Summary      Update a note
// @Description  Replace a note's tags and fields. Owner only.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Param        note body note.UpdateNoteRequest true "Note update request"
// @Success      200 {object} note.Note
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /notes/{noteId} [put]
// @Security     BearerAuth
func (h *Handler) UpdateNote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req note.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.noteService.Update(c.Request.Context(), c.Param("noteId"), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// DeleteNote godoc
// @Summary      Delete a note
// @Description  Delete a note. Owner only.
// @Tags         notes
// @Param        noteId path string true "Note ID"
// @Success      204
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /notes/{noteId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteNote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if _, err := h.noteService.Delete(c.Request.Context(), c.Param("noteId"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindNotes godoc
// @Summary      List workspace notes
// @Description  List a workspace's notes, optionally filtered by type, tags, or a text query. Member only.
// @Tags         notes
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        note_type query string false "Note type filter" Enums(CONTENT, CHAT, TEMPLATE)
// @Param        tags query string false "Comma-separated tags, matches notes carrying any"
// @Param        query query string false "Case-insensitive substring over field content"
// @Success      200 {array} note.Note
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /workspaces/{workspaceId}/notes [get]
// @Security     BearerAuth
func (h *Handler) FindNotes(c *gin.Context) {
	user := middleware.CurrentUser(c)

	filter := note.Filter{
		NoteType: note.Type(c.Query("note_type")),
		Query:    c.Query("query"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	notes, err := h.noteService.Find(c.Request.Context(), user.ID, c.Param("workspaceId"), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetNoteWorkspace godoc
// @Summary      Get a note's workspace
// @Description  Resolve the workspace a visible note currently lives in
// @Tags         notes
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Success      200 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /notes/{noteId}/workspace [get]
// @Security     BearerAuth
func (h *Handler) GetNoteWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// Visibility check first so the workspace ID of a foreign note leaks
	// nothing.
	if _, err := h.noteService.Get(c.Request.Context(), c.Param("noteId"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	workspaceID, err := h.noteService.WorkspaceForNote(c.Request.Context(), c.Param("noteId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace_id": workspaceID})
}

// ShareNote godoc
// @Summary      Share a note
// @Description  Move a note into another workspace the authenticated user belongs to. Note owner only.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Param        target body noteTargetRequest true "Target workspace"
// @Success      200 {object} note.Note
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /notes/{noteId}/share [post]
// @Security     BearerAuth
func (h *Handler) ShareNote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req noteTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.noteService.ShareToWorkspace(c.Request.Context(), c.Param("noteId"), user.ID, req.WorkspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// CopyNote godoc
// @Summary      Copy a note
// @Description  Duplicate a visible note into another workspace under a new ID, owned by the requester
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        noteId path string true "Note ID"
// @Param        target body noteTargetRequest true "Target workspace"
// @Success      201 {object} note.Note
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /notes/{noteId}/copy [post]
// @Security     BearerAuth
func (h *Handler) CopyNote(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req noteTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.noteService.CopyToWorkspace(c.Request.Context(), c.Param("noteId"), user.ID, req.WorkspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}
