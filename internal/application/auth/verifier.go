package auth

import (
	"context"
	"fmt"

	"notehive/internal/domain/auth"

	"google.golang.org/api/idtoken"
)

// Verifier validates a Google ID token and extracts the asserted identity.
// Signature verification is delegated to Google's key infrastructure; this
// interface owns the contract of which claims are required.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*auth.GoogleIdentity, error)
}

// googleVerifier verifies ID tokens against Google's published signing keys
type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a Verifier bound to the application's OAuth
// client ID. The client ID is the expected audience of every accepted token.
func NewGoogleVerifier(clientID string) Verifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawIDToken string) (*auth.GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	identity := &auth.GoogleIdentity{
		GoogleID: payload.Subject,
		Email:    stringClaim(payload.Claims, "email"),
		Name:     stringClaim(payload.Claims, "name"),
		Picture:  stringClaim(payload.Claims, "picture"),
	}

	// Email and display name are required downstream; a token without them
	// is rejected even though Google signed it.
	if identity.GoogleID == "" || identity.Email == "" || identity.Name == "" {
		return nil, fmt.Errorf("%w: missing required claims", ErrInvalidIDToken)
	}

	return identity, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
