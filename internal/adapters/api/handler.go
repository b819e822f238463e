package api

import (
	"errors"
	"net/http"

	"notehive/internal/adapters/api/middleware"
	appauth "notehive/internal/application/auth"
	appmedia "notehive/internal/application/media"
	appmsg "notehive/internal/application/message"
	appnote "notehive/internal/application/note"
	appws "notehive/internal/application/workspace"
	"notehive/internal/domain/auth"
	"notehive/internal/domain/message"
	"notehive/internal/domain/note"
	"notehive/internal/domain/workspace"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	_ "notehive/docs" // swagger docs
)

// Handler handles HTTP requests for the notes API
type Handler struct {
	authService      *appauth.Service
	workspaceService *appws.Service
	noteService      *appnote.Service
	messageService   *appmsg.Service
	mediaService     *appmedia.Service
	users            auth.Repository
	tokens           *appauth.TokenService
	chatManager      *ChatManager
	maxUploadBytes   int64
	devLoginEnabled  bool
}

// HandlerConfig wires the services a Handler depends on
type HandlerConfig struct {
	AuthService      *appauth.Service
	WorkspaceService *appws.Service
	NoteService      *appnote.Service
	MessageService   *appmsg.Service
	MediaService     *appmedia.Service
	Users            auth.Repository
	Tokens           *appauth.TokenService
	MaxUploadBytes   int64
	DevLoginEnabled  bool
}

// NewHandler creates a new API handler
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		authService:      cfg.AuthService,
		workspaceService: cfg.WorkspaceService,
		noteService:      cfg.NoteService,
		messageService:   cfg.MessageService,
		mediaService:     cfg.MediaService,
		users:            cfg.Users,
		tokens:           cfg.Tokens,
		chatManager:      NewChatManager(),
		maxUploadBytes:   cfg.MaxUploadBytes,
		devLoginEnabled:  cfg.DevLoginEnabled,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine, imagesDir string) {
	requireAuth := middleware.RequireAuth(h.tokens, middleware.RepositoryResolver(h.users))

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", h.SignUp)
			authGroup.POST("/signin", h.SignIn)
			// Dev login bypasses the identity provider and must never be
			// reachable in production.
			if h.devLoginEnabled {
				authGroup.POST("/dev-login", h.DevLogin)
			}
		}

		users := api.Group("/users", requireAuth)
		{
			users.GET("/me", h.GetCurrentUser)
			users.PUT("/me", h.UpdateCurrentUser)
			users.DELETE("/me", h.DeleteCurrentUser)
			users.PUT("/me/fcm-token", h.UpdateFCMToken)
			users.GET("/by-email/:email", h.GetUserByEmail)
			users.GET("/:userId", h.GetUser)
		}

		workspaces := api.Group("/workspaces", requireAuth)
		{
			workspaces.POST("", h.CreateWorkspace)
			workspaces.GET("", h.ListWorkspaces)
			workspaces.GET("/personal", h.GetPersonalWorkspace)
			workspaces.GET("/:workspaceId", h.GetWorkspace)
			workspaces.PUT("/:workspaceId", h.UpdateWorkspaceProfile)
			workspaces.PUT("/:workspaceId/picture", h.UpdateWorkspacePicture)
			workspaces.DELETE("/:workspaceId", h.DeleteWorkspace)
			workspaces.GET("/:workspaceId/members", h.ListWorkspaceMembers)
			workspaces.GET("/:workspaceId/members/:userId/status", h.GetMembershipStatus)
			workspaces.POST("/:workspaceId/invite", h.InviteToWorkspace)
			workspaces.POST("/:workspaceId/leave", h.LeaveWorkspace)
			workspaces.POST("/:workspaceId/ban", h.BanFromWorkspace)
			workspaces.GET("/:workspaceId/tags", h.ListWorkspaceTags)
			workspaces.GET("/:workspaceId/notes", h.FindNotes)
			workspaces.GET("/:workspaceId/messages", h.ListMessages)
			workspaces.POST("/:workspaceId/messages", h.CreateMessage)
		}

		notes := api.Group("/notes", requireAuth)
		{
			notes.POST("", h.CreateNote)
			notes.GET("/:noteId", h.GetNote)
			notes.PUT("/:noteId", h.UpdateNote)
			notes.DELETE("/:noteId", h.DeleteNote)
			notes.GET("/:noteId/workspace", h.GetNoteWorkspace)
			notes.POST("/:noteId/share", h.ShareNote)
			notes.POST("/:noteId/copy", h.CopyNote)
		}

		api.DELETE("/messages/:messageId", requireAuth, h.DeleteMessage)
		api.POST("/images", requireAuth, h.UploadImage)

		// Chat sockets authenticate via query token because browser WebSocket
		// clients cannot set an Authorization header.
		api.GET("/ws/workspace/:workspaceId", h.HandleChatSocket)
	}

	r.Static("/images", imagesDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Health godoc
// @Summary      Health check
// @Description  Check if the API is healthy
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps service errors to HTTP status codes. Unknown errors are
// treated as internal faults.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, workspace.ErrWorkspaceNotFound),
		errors.Is(err, note.ErrNoteNotFound),
		errors.Is(err, message.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUserExists),
		errors.Is(err, workspace.ErrNameTaken),
		errors.Is(err, appws.ErrAlreadyMember):
		return http.StatusConflict
	case errors.Is(err, appws.ErrAccessDenied),
		errors.Is(err, appws.ErrNotOwner),
		errors.Is(err, appws.ErrUserBanned),
		errors.Is(err, appws.ErrOwnerCannotLeave),
		errors.Is(err, appnote.ErrAccessDenied),
		errors.Is(err, appmsg.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, appauth.ErrInvalidIDToken),
		errors.Is(err, appauth.ErrTokenExpired),
		errors.Is(err, appauth.ErrTokenMalformed):
		return http.StatusUnauthorized
	case errors.Is(err, appnote.ErrInvalidNoteType),
		errors.Is(err, appws.ErrNoPersonalWorkspace),
		errors.Is(err, appmedia.ErrInvalidPath):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		body = gin.H{"error": "internal server error"}
	}
	c.JSON(status, body)
}
