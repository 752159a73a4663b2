package dto

import "repoforge-core/internal/github"

// UserResponse consolidates the authenticated user's profile with their
// current rate-limit snapshot.
type UserResponse struct {
	User      *github.Account  `json:"user"`
	RateLimit *github.RateInfo `json:"rate_limit,omitempty"`
}

// TokenUser is the minimal identity attached to a token validation result.
type TokenUser struct {
	Login string `json:"login"`
}

// TokenValidationResponse reports whether a token is live and carries the
// scopes GitHub granted it. Failure is encoded in the body, not the HTTP
// status: validity is the question being answered, not a request failure.
type TokenValidationResponse struct {
	Valid             bool       `json:"valid"`
	Error             string     `json:"error,omitempty"`
	Scopes            []string   `json:"scopes,omitempty"`
	RequiredScopes    []string   `json:"required_scopes"`
	HasRequiredScopes bool       `json:"has_required_scopes"`
	User              *TokenUser `json:"user,omitempty"`
}
