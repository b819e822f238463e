package api

import (
	"net/http"

	"notehive/internal/adapters/api/middleware"
	"notehive/internal/domain/workspace"

	"github.com/gin-gonic/gin"
)

// memberActionRequest names the user an invite or ban acts on
type memberActionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CreateWorkspace godoc
// @Summary      Create a workspace
// @Description  Create a workspace owned by the authenticated user. Names are unique.
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        workspace body workspace.CreateWorkspaceRequest true "Workspace creation request"
// @Success      201 {object} workspace.Workspace
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /workspaces [post]
// @Security     BearerAuth
func (h *Handler) CreateWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req workspace.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ws)
}

// ListWorkspaces godoc
// @Summary      List workspaces
// @Description  List the workspaces the authenticated user belongs to, excluding their personal workspace
// @Tags         workspaces
// @Produce      json
// @Success      200 {array} workspace.Workspace
// @Failure      401 {object} map[string]string
// @Router       /workspaces [get]
// @Security     BearerAuth
func (h *Handler) ListWorkspaces(c *gin.Context) {
	user := middleware.CurrentUser(c)

	list, err := h.workspaceService.ListForUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetPersonalWorkspace godoc
// @Summary      Get the personal workspace
// @Description  Get the authenticated user's personal workspace
// @Tags         workspaces
// @Produce      json
// @Success      200 {object} workspace.Workspace
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/personal [get]
// @Security     BearerAuth
func (h *Handler) GetPersonalWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ws, err := h.workspaceService.GetPersonal(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// GetWorkspace godoc
// @Summary      Get a workspace
// @Description  Get a workspace the authenticated user is a member of
// @Tags         workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Success      200 {object} workspace.Workspace
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId} [get]
// @Security     BearerAuth
func (h *Handler) GetWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ws, err := h.workspaceService.Get(c.Request.Context(), c.Param("workspaceId"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// UpdateWorkspaceProfile godoc
// @Summary      Update a workspace profile
// @Description  Update the workspace's display name and description. Owner only.
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        profile body workspace.UpdateProfileRequest true "Profile update request"
// @Success      200 {object} workspace.Workspace
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId} [put]
// @Security     BearerAuth
func (h *Handler) UpdateWorkspaceProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req workspace.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.UpdateProfile(c.Request.Context(), c.Param("workspaceId"), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// UpdateWorkspacePicture godoc
// @Summary      Update a workspace picture
// @Description  Replace the workspace's profile picture path. Owner only.
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        picture body workspace.UpdatePictureRequest true "Picture update request"
// @Success      200 {object} workspace.Workspace
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId}/picture [put]
// @Security     BearerAuth
func (h *Handler) UpdateWorkspacePicture(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req workspace.UpdatePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.UpdatePicture(c.Request.Context(), c.Param("workspaceId"), user.ID, req.ImagePath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// DeleteWorkspace godoc
// @Summary      Delete a workspace
// @Description  Delete a workspace with all its notes and chat messages. Owner only.
// @Tags         workspaces
// @Param        workspaceId path string true "Workspace ID"
// @Success      204
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.workspaceService.Delete(c.Request.Context(), c.Param("workspaceId"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListWorkspaceMembers godoc
// @Summary      List workspace members
// @Description  List the user records of a workspace's members. Member only.
// @Tags         workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Success      200 {array} auth.User
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId}/members [get]
// @Security     BearerAuth
func (h *Handler) ListWorkspaceMembers(c *gin.Context) {
	user := middleware.CurrentUser(c)

	members, err := h.workspaceService.Members(c.Request.Context(), c.Param("workspaceId"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetMembershipStatus godoc
// @Summary      Get a user's membership status
// @Description  Report whether a user is the owner, a member, banned, or unrelated to the workspace
// @Tags         workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        userId path string true "User ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId}/members/{userId}/status [get]
// @Security     BearerAuth
func (h *Handler) GetMembershipStatus(c *gin.Context) {
	status, err := h.workspaceService.MembershipStatus(c.Request.Context(), c.Param("workspaceId"), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// InviteToWorkspace godoc
// @Summary      Invite a user
// @Description  Add a user to the workspace. Any member may invite; banned users cannot be re-invited.
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        invite body memberActionRequest true "User to invite"
// @Success      200 {object} workspace.Workspace
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /workspaces/{workspaceId}/invite [post]
// @Security     BearerAuth
func (h *Handler) InviteToWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req memberActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.Invite(c.Request.Context(), c.Param("workspaceId"), user.ID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// LeaveWorkspace godoc
// @Summary      Leave a workspace
// @Description  Remove the authenticated user from the workspace. The owner cannot leave.
// @Tags         workspaces
// @Param        workspaceId path string true "Workspace ID"
// @Success      204
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId}/leave [post]
// @Security     BearerAuth
func (h *Handler) LeaveWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.workspaceService.Leave(c.Request.Context(), c.Param("workspaceId"), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BanFromWorkspace godoc
// @Summary      Ban a user
// @Description  Remove a user from the workspace and prevent re-inviting them. Owner only.
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Param        ban body memberActionRequest true "User to ban"
// @Success      200 {object} workspace.Workspace
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId}/ban [post]
// @Security     BearerAuth
func (h *Handler) BanFromWorkspace(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req memberActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceService.Ban(c.Request.Context(), c.Param("workspaceId"), user.ID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// ListWorkspaceTags godoc
// @Summary      List note tags
// @Description  List the distinct tags used by notes across the workspace. Member only.
// @Tags         workspaces
// @Produce      json
// @Param        workspaceId path string true "Workspace ID"
// @Success      200 {array} string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /workspaces/{workspaceId}/tags [get]
// @Security     BearerAuth
func (h *Handler) ListWorkspaceTags(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tags, err := h.workspaceService.AllTags(c.Request.Context(), c.Param("workspaceId"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}
