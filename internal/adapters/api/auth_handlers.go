package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// credentialRequest carries the Google ID token for sign-up and sign-in
type credentialRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// devLoginRequest carries the email for the development-only login
type devLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SignUp godoc
// @Summary      Register with a Google account
// @Description  Verify a Google ID token and create a new account with its personal workspace
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body credentialRequest true "Google ID token"
// @Success      201 {object} appauth.AuthResult
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// SignIn godoc
// @Summary      Sign in with a Google account
// @Description  Verify a Google ID token and issue a session token for an existing account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body credentialRequest true "Google ID token"
// @Success      200 {object} appauth.AuthResult
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /auth/signin [post]
func (h *Handler) SignIn(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DevLogin godoc
// @Summary      Development login
// @Description  Issue a session token for an email without identity verification. Only registered outside production.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login body devLoginRequest true "Email to log in as"
// @Success      200 {object} appauth.AuthResult
// @Failure      400 {object} map[string]string
// @Router       /auth/dev-login [post]
func (h *Handler) DevLogin(c *gin.Context) {
	var req devLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.DevLogin(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
