package api

import (
	"net/http"
	"strings"
	"time"

	"notehive/internal/adapters/api/middleware"
	"notehive/internal/domain/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetCurrentUser godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's record
// @Tags         users
// @Produce      json
// @Success      200 {object} auth.User
// @Failure      401 {object} map[string]string
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *Handler) GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateCurrentUser godoc
// @Summary      Update current user profile
// @Description  Update the authenticated user's name, description or profile picture
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        profile body auth.UpdateProfileRequest true "Profile update request"
// @Success      200 {object} auth.User
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /users/me [put]
// @Security     BearerAuth
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		user.Profile.Name = req.Name
	}
	if req.Description != "" {
		user.Profile.Description = req.Description
	}
	if req.ImagePath != "" && req.ImagePath != user.Profile.ImagePath {
		// Replacing a locally stored picture frees the old file
		if old := user.Profile.ImagePath; strings.HasPrefix(old, "/images/") {
			if err := h.mediaService.Delete(old); err != nil {
				log.Warn().Err(err).Str("path", old).Msg("Failed to delete replaced profile picture")
			}
		}
		user.Profile.ImagePath = req.ImagePath
	}
	user.UpdatedAt = time.Now()

	if err := h.users.UpdateUser(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteCurrentUser godoc
// @Summary      Delete current user
// @Description  Delete the authenticated user's account along with their personal workspace and uploaded images
// @Tags         users
// @Success      204
// @Failure      401 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /users/me [delete]
// @Security     BearerAuth
func (h *Handler) DeleteCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// The personal workspace, the user's notes in every workspace, and
	// their uploaded images all go with the account.
	if user.PersonalWorkspaceID != "" {
		if err := h.workspaceService.Delete(c.Request.Context(), user.PersonalWorkspaceID, user.ID); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to delete personal workspace")
		}
	}
	if err := h.noteService.DeleteAllForUser(c.Request.Context(), user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to delete user notes")
	}
	if err := h.mediaService.DeleteAllForUser(user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to delete user images")
	}

	if err := h.users.DeleteUser(user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateFCMToken godoc
// @Summary      Register a device push token
// @Description  Store the FCM device token used to push workspace and chat notifications
// @Tags         users
// @Accept       json
// @Param        token body auth.UpdateFCMTokenRequest true "Device token"
// @Success      204
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /users/me/fcm-token [put]
// @Security     BearerAuth
func (h *Handler) UpdateFCMToken(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req auth.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.FCMToken = req.FCMToken
	user.UpdatedAt = time.Now()
	if err := h.users.UpdateUser(user); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUser godoc
// @Summary      Get a user
// @Description  Get another user's public record by ID
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} auth.User
// @Failure      404 {object} map[string]string
// @Router       /users/{userId} [get]
// @Security     BearerAuth
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserByEmail godoc
// @Summary      Find a user by email
// @Description  Look up a user's public record by email, used when inviting to a workspace
// @Tags         users
// @Produce      json
// @Param        email path string true "Email address"
// @Success      200 {object} auth.User
// @Failure      404 {object} map[string]string
// @Router       /users/by-email/{email} [get]
// @Security     BearerAuth
func (h *Handler) GetUserByEmail(c *gin.Context) {
	user, err := h.users.GetUserByEmail(c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
