// Package github is the gateway to the GitHub REST API. It wraps the
// go-github client, threading the caller's token and the fixed client
// identifier into every upstream call and reshaping responses into
// domain records. No call is retried; upstream failures surface as
// APIError values for the application layer to map.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"repoforge-core/internal/config"
	"repoforge-core/internal/domain/repo"
)

// Account types reported by the probe.
const (
	AccountTypeUser         = "user"
	AccountTypeOrganization = "organization"
)

// Client handles GitHub API interactions.
type Client struct {
	baseURL   *url.URL
	userAgent string
	timeout   time.Duration
	logger    *log.Logger
}

// NewClient creates a new GitHub API client from configuration.
func NewClient(cfg *config.GitHubConfig, logger *log.Logger) (*Client, error) {
	baseURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API base URL: %w", err)
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.UpstreamTimeout(),
		logger:    logger,
	}, nil
}

// api builds a per-request go-github client. An empty token yields an
// unauthenticated client; tokens are never carried in client state beyond
// the request.
func (c *Client) api(token string) *gh.Client {
	httpClient := &http.Client{Timeout: c.timeout}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	client := gh.NewClient(httpClient)
	client.BaseURL = c.baseURL
	client.UserAgent = c.userAgent
	return client
}

// APIError is an upstream failure with the status code GitHub answered
// with and its best-available message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API returned status %d: %s", e.StatusCode, e.Message)
}

// asAPIError converts go-github error values into APIError where an
// upstream status is known, and passes network errors through unchanged.
func asAPIError(err error) error {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		status := 0
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}
		return &APIError{StatusCode: status, Message: errResp.Message}
	}
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{StatusCode: http.StatusForbidden, Message: rateErr.Message}
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &APIError{StatusCode: http.StatusForbidden, Message: abuseErr.Message}
	}
	return err
}

// RateInfo is the caller's rate-limit snapshot read from upstream
// response headers.
type RateInfo struct {
	Limit     int   `json:"limit,omitempty"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

func rateFromResponse(resp *gh.Response) *RateInfo {
	if resp == nil {
		return nil
	}
	return &RateInfo{
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		Reset:     resp.Rate.Reset.Unix(),
	}
}

// AccountType probes whether name is an organization. Any probe failure
// falls back to the user code path rather than aborting.
func (c *Client) AccountType(ctx context.Context, token, name string) string {
	if _, _, err := c.api(token).Organizations.Get(ctx, name); err != nil {
		c.logger.Debug("organization probe failed, treating owner as user", "owner", name)
		return AccountTypeUser
	}
	return AccountTypeOrganization
}

// ListOptions controls a repository listing call.
type ListOptions struct {
	Type    string
	Sort    string
	Page    int
	PerPage int
}

// ListRepositories fetches one page of repositories for the owner, using
// the organization listing when the probe identified one.
func (c *Client) ListRepositories(ctx context.Context, token, owner, accountType string, opts ListOptions) ([]repo.Record, *RateInfo, error) {
	api := c.api(token)

	var (
		repos []*gh.Repository
		resp  *gh.Response
		err   error
	)
	if accountType == AccountTypeOrganization {
		repos, resp, err = api.Repositories.ListByOrg(ctx, owner, &gh.RepositoryListByOrgOptions{
			Type:        opts.Type,
			Sort:        opts.Sort,
			ListOptions: gh.ListOptions{Page: opts.Page, PerPage: opts.PerPage},
		})
	} else {
		repos, resp, err = api.Repositories.ListByUser(ctx, owner, &gh.RepositoryListByUserOptions{
			Type:        opts.Type,
			Sort:        opts.Sort,
			ListOptions: gh.ListOptions{Page: opts.Page, PerPage: opts.PerPage},
		})
	}
	if err != nil {
		return nil, rateFromResponse(resp), asAPIError(err)
	}

	records := make([]repo.Record, 0, len(repos))
	for _, r := range repos {
		records = append(records, fromGitHub(r))
	}
	return records, rateFromResponse(resp), nil
}

// CreateFork forks owner/name, optionally into an organization. GitHub
// queues forks asynchronously and may answer 202; the queued fork carried
// in that response counts as success.
func (c *Client) CreateFork(ctx context.Context, token, owner, name, organization string) (repo.Record, error) {
	forked, _, err := c.api(token).Repositories.CreateFork(ctx, owner, name, &gh.RepositoryCreateForkOptions{
		Organization: organization,
	})
	if err != nil {
		var accepted *gh.AcceptedError
		if errors.As(err, &accepted) {
			var queued gh.Repository
			if jsonErr := json.Unmarshal(accepted.Raw, &queued); jsonErr == nil {
				return fromGitHub(&queued), nil
			}
			return repo.Record{}, fmt.Errorf("failed to decode queued fork: %w", err)
		}
		return repo.Record{}, asAPIError(err)
	}
	return fromGitHub(forked), nil
}

// CreateRepository creates a new auto-initialized repository for the
// authenticated user.
func (c *Client) CreateRepository(ctx context.Context, token, name, description string, private bool) (repo.Record, error) {
	created, _, err := c.api(token).Repositories.Create(ctx, "", &gh.Repository{
		Name:        gh.String(name),
		Description: gh.String(description),
		Private:     gh.Bool(private),
		AutoInit:    gh.Bool(true),
	})
	if err != nil {
		return repo.Record{}, asAPIError(err)
	}
	return fromGitHub(created), nil
}

// ContentEntry is one entry of a repository contents listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int    `json:"size"`
	HTMLURL     string `json:"html_url,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// ListContents fetches the contents listing at path. A directory yields
// its entries; a file yields a single-entry listing.
func (c *Client) ListContents(ctx context.Context, token, owner, name, path string) ([]ContentEntry, error) {
	file, dir, _, err := c.api(token).Repositories.GetContents(ctx, owner, name, path, nil)
	if err != nil {
		return nil, asAPIError(err)
	}

	if file != nil {
		return []ContentEntry{contentEntry(file)}, nil
	}
	entries := make([]ContentEntry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, contentEntry(item))
	}
	return entries, nil
}

// Account is the consolidated profile of the authenticated user.
type Account struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	Type        string `json:"type,omitempty"`
	Plan        string `json:"plan,omitempty"`
}

// AuthenticatedUser fetches the profile of the token's owner.
func (c *Client) AuthenticatedUser(ctx context.Context, token string) (*Account, error) {
	user, _, err := c.api(token).Users.Get(ctx, "")
	if err != nil {
		return nil, asAPIError(err)
	}
	return &Account{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Email:       user.GetEmail(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Company:     user.GetCompany(),
		Location:    user.GetLocation(),
		PublicRepos: user.GetPublicRepos(),
		PublicGists: user.GetPublicGists(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		Type:        user.GetType(),
		Plan:        user.GetPlan().GetName(),
	}, nil
}

// RateLimit fetches the caller's current core rate-limit status.
func (c *Client) RateLimit(ctx context.Context, token string) (*RateInfo, error) {
	limits, _, err := c.api(token).RateLimit.Get(ctx)
	if err != nil {
		return nil, asAPIError(err)
	}
	core := limits.GetCore()
	return &RateInfo{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Unix(),
	}, nil
}

// TokenInfo fetches the token owner's login and the granted scopes read
// from the X-OAuth-Scopes response header.
func (c *Client) TokenInfo(ctx context.Context, token string) (login string, scopes []string, err error) {
	user, resp, err := c.api(token).Users.Get(ctx, "")
	if err != nil {
		return "", nil, asAPIError(err)
	}

	if header := resp.Header.Get("X-OAuth-Scopes"); header != "" {
		for _, scope := range strings.Split(header, ",") {
			if scope = strings.TrimSpace(scope); scope != "" {
				scopes = append(scopes, scope)
			}
		}
	}
	return user.GetLogin(), scopes, nil
}

func contentEntry(item *gh.RepositoryContent) ContentEntry {
	return ContentEntry{
		Name:        item.GetName(),
		Path:        item.GetPath(),
		Type:        item.GetType(),
		Size:        item.GetSize(),
		HTMLURL:     item.GetHTMLURL(),
		DownloadURL: item.GetDownloadURL(),
	}
}

func fromGitHub(r *gh.Repository) repo.Record {
	record := repo.Record{
		ID:            r.GetID(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Watchers:      r.GetWatchersCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Size:          r.GetSize(),
		Private:       r.GetPrivate(),
		Fork:          r.GetFork(),
		Archived:      r.GetArchived(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
		Topics:        r.Topics,
		CloneURL:      r.GetCloneURL(),
		SSHURL:        r.GetSSHURL(),
		HTMLURL:       r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
	}
	if license := r.GetLicense(); license != nil {
		record.License = &repo.License{Name: license.GetName(), SPDXID: license.GetSPDXID()}
	}
	return record
}
