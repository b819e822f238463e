package auth

// GoogleIdentity is the verified identity extracted from a Google ID token.
// It is only ever produced by a successful verification against Google's
// signing keys and the configured audience.
type GoogleIdentity struct {
	GoogleID string `json:"google_id"` // "sub" claim
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}
