package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notehive/internal/domain/auth"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WorkspaceProvisioner creates the personal workspace attached to every new
// account. Implemented by the workspace service.
type WorkspaceProvisioner interface {
	CreatePersonal(ctx context.Context, owner *auth.User) (workspaceID string, err error)
}

// AuthResult is returned by the sign-up, sign-in and dev-login entry points
type AuthResult struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

// Service implements the authentication entry points: Google-backed sign-up
// and sign-in, plus the explicitly gated dev login
type Service struct {
	verifier   Verifier
	tokens     *TokenService
	users      auth.Repository
	workspaces WorkspaceProvisioner
}

// NewService creates a new authentication service
func NewService(verifier Verifier, tokens *TokenService, users auth.Repository, workspaces WorkspaceProvisioner) *Service {
	return &Service{
		verifier:   verifier,
		tokens:     tokens,
		users:      users,
		workspaces: workspaces,
	}
}

// SignUp verifies a Google ID token and registers a new account. Fails with
// auth.ErrUserExists when the Google subject is already registered.
func (s *Service) SignUp(ctx context.Context, rawIDToken string) (*AuthResult, error) {
	identity, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByGoogleID(identity.GoogleID); err == nil {
		return nil, auth.ErrUserExists
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user, err := s.register(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// SignIn verifies a Google ID token for an existing account. Fails with
// auth.ErrUserNotFound when the Google subject is not registered.
func (s *Service) SignIn(ctx context.Context, rawIDToken string) (*AuthResult, error) {
	identity, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByGoogleID(identity.GoogleID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// DevLogin issues a session token for an email without any identity provider
// check. Creation is idempotent: the same email always resolves to the same
// account, keyed first by email and with a deterministic provider subject.
// The route for this entry point is only registered in non-production
// configurations.
func (s *Service) DevLogin(ctx context.Context, email string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user == nil || errors.Is(err, auth.ErrUserNotFound) {
		identity := &auth.GoogleIdentity{
			GoogleID: "dev-" + slugify(email),
			Email:    email,
			Name:     "Test User",
			Picture:  "https://via.placeholder.com/150",
		}
		user, err = s.register(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// register creates the user record and its personal workspace
func (s *Service) register(ctx context.Context, identity *auth.GoogleIdentity) (*auth.User, error) {
	now := time.Now()
	user := &auth.User{
		ID:       uuid.New().String(),
		GoogleID: identity.GoogleID,
		Email:    strings.ToLower(identity.Email),
		Profile: auth.Profile{
			Name:      identity.Name,
			ImagePath: identity.Picture,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.CreateUser(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	workspaceID, err := s.workspaces.CreatePersonal(ctx, user)
	if err != nil {
		// The account exists without its personal workspace; log and keep
		// going so sign-up is not blocked on workspace provisioning.
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create personal workspace")
		return user, nil
	}

	user.PersonalWorkspaceID = workspaceID
	if err := s.users.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("attach personal workspace: %w", err)
	}
	return user, nil
}

// slugify maps an email to a stable identifier fragment
func slugify(email string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, email)
}
