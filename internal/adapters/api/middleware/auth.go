package middleware

import (
	"errors"
	"net/http"
	"strings"

	appauth "notehive/internal/application/auth"
	"notehive/internal/domain/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// UserContextKey is the key used to store the authenticated user in gin context
	UserContextKey = "user"
)

// Client-facing bodies are deliberately uniform: a 401 never reveals whether
// the token was malformed, expired, or named a deleted account.
var (
	errUnauthorized  = gin.H{"error": "unauthorized"}
	errMisconfigured = gin.H{"error": "server misconfigured"}
)

// Resolver turns a validated subject ID into the request's user identity.
// The repository-backed resolver is the default: it re-fetches the record so
// tokens of deleted accounts stop working immediately.
type Resolver func(c *gin.Context, userID string) (*auth.User, error)

// RepositoryResolver resolves the user by re-fetching it from storage
func RepositoryResolver(users auth.Repository) Resolver {
	return func(c *gin.Context, userID string) (*auth.User, error) {
		return users.GetUser(userID)
	}
}

// ClaimsResolver trusts the token payload and builds a skeletal identity
// without a storage round trip. Only for routes where the lookup cost has
// been measured to matter; deleted accounts keep access until their token
// expires.
func ClaimsResolver() Resolver {
	return func(c *gin.Context, userID string) (*auth.User, error) {
		return &auth.User{ID: userID}, nil
	}
}

// RequireAuth authenticates every request on the route group. The pipeline
// per request is: extract bearer token, check the signing secret is
// configured, validate the token, resolve the subject user, then hand off to
// the route handler with the user in context. Any failure terminates the
// request; no downstream handler runs.
func RequireAuth(tokens *appauth.TokenService, resolve Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errUnauthorized)
			return
		}

		// A missing secret must surface as a server fault before validation
		// is attempted, so it can never masquerade as a bad token.
		if !tokens.Ready() {
			log.Error().Msg("JWT secret not configured, rejecting request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, errMisconfigured)
			return
		}

		userID, err := tokens.Validate(raw)
		if err != nil {
			if errors.Is(err, appauth.ErrSecretMissing) {
				log.Error().Msg("JWT secret not configured, rejecting request")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errMisconfigured)
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errUnauthorized)
			return
		}

		user, err := resolve(c, userID)
		if err != nil {
			// Token was structurally valid but the account no longer exists.
			// Treated as an auth failure, not a 404, so stale tokens don't
			// probe account existence.
			c.AbortWithStatusJSON(http.StatusUnauthorized, errUnauthorized)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header of the
// form "Bearer <token>"
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// CurrentUser retrieves the authenticated user from the gin context
func CurrentUser(c *gin.Context) *auth.User {
	if v, exists := c.Get(UserContextKey); exists {
		if u, ok := v.(*auth.User); ok {
			return u
		}
	}
	return nil
}
