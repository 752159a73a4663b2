package service

import (
	"context"

	"repoforge-core/internal/application/dto"
	"repoforge-core/internal/github"
	"repoforge-core/internal/validation"
)

// requiredScopes are the scopes the dashboard needs a token to carry.
var requiredScopes = []string{"repo", "user"}

// UserService handles the authenticated-user use cases.
type UserService struct {
	gateway *github.Client
}

// NewUserService creates a new user service.
func NewUserService(gateway *github.Client) *UserService {
	return &UserService{gateway: gateway}
}

// GetAuthenticatedUser fetches the token owner's profile and their
// current rate-limit snapshot. A failed profile call aborts before the
// rate-limit call is attempted.
func (s *UserService) GetAuthenticatedUser(ctx context.Context, token string) (*dto.UserResponse, error) {
	if token == "" {
		return nil, validationError("token required")
	}
	if !validation.IsValidToken(token) {
		return nil, validationError("token format is invalid")
	}

	account, err := s.gateway.AuthenticatedUser(ctx, token)
	if err != nil {
		return nil, mapUpstream(err, upstreamMessages{
			Unauthorized: "invalid or expired token",
			Forbidden:    "token lacks the required scope",
		})
	}

	rate, err := s.gateway.RateLimit(ctx, token)
	if err != nil {
		return nil, mapUpstream(err, upstreamMessages{
			Unauthorized: "invalid or expired token",
			Forbidden:    "token lacks the required scope",
		})
	}

	return &dto.UserResponse{User: account, RateLimit: rate}, nil
}

// ValidateToken checks a token against the upstream API and reports the
// granted scopes. Failures are encoded in the response body; this
// operation itself never fails on an invalid token.
func (s *UserService) ValidateToken(ctx context.Context, token string) *dto.TokenValidationResponse {
	response := &dto.TokenValidationResponse{RequiredScopes: requiredScopes}

	if token == "" {
		response.Error = "token required"
		return response
	}

	login, scopes, err := s.gateway.TokenInfo(ctx, token)
	if err != nil {
		response.Error = err.Error()
		return response
	}

	granted := make(map[string]bool, len(scopes))
	for _, scope := range scopes {
		granted[scope] = true
	}
	hasRequired := true
	for _, scope := range requiredScopes {
		if !granted[scope] {
			hasRequired = false
			break
		}
	}

	response.Valid = true
	response.Scopes = scopes
	response.HasRequiredScopes = hasRequired
	response.User = &dto.TokenUser{Login: login}
	return response
}
