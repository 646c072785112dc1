package model

// Identity is the verified claim set supplied by the identity provider.
// The booking core never performs credential verification itself; it
// trusts whatever pkg/auth extracted from the bearer token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
}
