package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoforge-core/internal/config"
	"repoforge-core/internal/github"
)

func newTestUserService(t *testing.T, handler http.Handler) *UserService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := github.NewClient(&config.GitHubConfig{
		APIBaseURL:     server.URL + "/",
		UserAgent:      "repoforge-test",
		TimeoutSeconds: 5,
	}, log.New(io.Discard))
	require.NoError(t, err)
	return NewUserService(gateway)
}

func TestGetAuthenticatedUserMissingToken(t *testing.T) {
	svc := newTestUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	}))

	_, err := svc.GetAuthenticatedUser(context.Background(), "")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "token required", appErr.Message)
}

func TestGetAuthenticatedUser(t *testing.T) {
	var rateLimitCalled bool
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			fmt.Fprint(w, `{"login": "octocat", "name": "The Octocat",
				"public_repos": 8, "followers": 3, "following": 2, "type": "User"}`)
		case "/rate_limit":
			rateLimitCalled = true
			fmt.Fprint(w, `{"resources": {"core": {"limit": 5000, "remaining": 4242, "reset": 1700000000}}}`)
		default:
			t.Errorf("unexpected upstream call: %s", r.URL.Path)
		}
	}

	svc := newTestUserService(t, http.HandlerFunc(handler))
	response, err := svc.GetAuthenticatedUser(context.Background(), testToken)

	require.NoError(t, err)
	assert.True(t, rateLimitCalled)
	assert.Equal(t, "octocat", response.User.Login)
	assert.Equal(t, 8, response.User.PublicRepos)
	require.NotNil(t, response.RateLimit)
	assert.Equal(t, 4242, response.RateLimit.Remaining)
	assert.Equal(t, int64(1700000000), response.RateLimit.Reset)
}

func TestGetAuthenticatedUserBadCredentials(t *testing.T) {
	var calls int
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	}

	svc := newTestUserService(t, http.HandlerFunc(handler))
	_, err := svc.GetAuthenticatedUser(context.Background(), testToken)

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindUnauthorized, appErr.Kind)
	assert.Equal(t, "invalid or expired token", appErr.Message)
	assert.Equal(t, "Bad credentials", appErr.Details)
	// A failed profile call aborts before the rate-limit call.
	assert.Equal(t, 1, calls)
}

func TestValidateTokenMissing(t *testing.T) {
	svc := newTestUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	}))

	result := svc.ValidateToken(context.Background(), "")

	assert.False(t, result.Valid)
	assert.Equal(t, "token required", result.Error)
	assert.Equal(t, []string{"repo", "user"}, result.RequiredScopes)
}

func TestValidateToken(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OAuth-Scopes", "repo, user, gist")
		fmt.Fprint(w, `{"login": "octocat"}`)
	}

	svc := newTestUserService(t, http.HandlerFunc(handler))
	result := svc.ValidateToken(context.Background(), testToken)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Error)
	assert.Equal(t, []string{"repo", "user", "gist"}, result.Scopes)
	assert.True(t, result.HasRequiredScopes)
	require.NotNil(t, result.User)
	assert.Equal(t, "octocat", result.User.Login)
}

func TestValidateTokenMissingScope(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OAuth-Scopes", "repo")
		fmt.Fprint(w, `{"login": "octocat"}`)
	}

	svc := newTestUserService(t, http.HandlerFunc(handler))
	result := svc.ValidateToken(context.Background(), testToken)

	assert.True(t, result.Valid)
	assert.False(t, result.HasRequiredScopes)
}

func TestValidateTokenUpstreamFailure(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	}

	svc := newTestUserService(t, http.HandlerFunc(handler))
	result := svc.ValidateToken(context.Background(), testToken)

	// Failure is encoded in the body; no error escapes.
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "Bad credentials")
}
