package service

import (
	"context"
	"fmt"

	"repoforge-core/internal/application/dto"
	"repoforge-core/internal/domain/repo"
	"repoforge-core/internal/github"
	"repoforge-core/internal/validation"
)

const (
	// maxMergeSources caps the source list of a merged repository.
	maxMergeSources = 50

	mergeDisclaimer = "These commands are not executed by the server. Run them " +
		"manually to assemble the source repositories into the new repository."
)

var (
	allowedListTypes = []string{"all", "owner", "member"}
	allowedSortKeys  = []string{"updated", "created", "pushed", "full_name"}
)

// RepositoryService handles the repository-facing use cases: search,
// fork, merged-repository creation, and contents listing.
type RepositoryService struct {
	gateway *github.Client
}

// NewRepositoryService creates a new repository service.
func NewRepositoryService(gateway *github.Client) *RepositoryService {
	return &RepositoryService{gateway: gateway}
}

// SearchParams carries the raw search inputs; pagination values arrive as
// query strings and are normalized here.
type SearchParams struct {
	Owner   string
	Token   string
	Type    string
	Sort    string
	Page    string
	PerPage string
}

// Search lists one page of an owner's repositories. The owner is probed
// for account type first; a failed probe falls back to the user listing
// rather than aborting.
func (s *RepositoryService) Search(ctx context.Context, params SearchParams) (*dto.RepositoryPage, error) {
	owner := validation.Sanitize(params.Owner)
	if !validation.IsValidOwnerName(owner) {
		return nil, validationError("a valid username or organization name is required")
	}
	if params.Token != "" && !validation.IsValidToken(params.Token) {
		return nil, validationError("token format is invalid")
	}

	listType := validation.NormalizeSortKey(params.Type, allowedListTypes)
	sort := validation.NormalizeSortKey(params.Sort, allowedSortKeys)
	page, perPage := validation.NormalizePagination(params.Page, params.PerPage)

	accountType := s.gateway.AccountType(ctx, params.Token, owner)

	records, rate, err := s.gateway.ListRepositories(ctx, params.Token, owner, accountType, github.ListOptions{
		Type:    listType,
		Sort:    sort,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return nil, mapUpstream(err, upstreamMessages{
			NotFound:  "user or organization not found",
			Forbidden: "rate limit exceeded or access forbidden",
		})
	}

	return &dto.RepositoryPage{
		AccountType: accountType,
		Repos:       records,
		Pagination: dto.Pagination{
			Page:    page,
			PerPage: perPage,
			Count:   len(records),
			HasMore: len(records) == perPage,
		},
		RateLimit: rate,
	}, nil
}

// Fork forks owner/repo on behalf of the token's owner, optionally into a
// destination organization.
func (s *RepositoryService) Fork(ctx context.Context, req dto.ForkRequest) (*dto.ForkResponse, error) {
	if !validation.IsValidOwnerName(req.Owner) {
		return nil, validationError("a valid repository owner is required")
	}
	if !validation.IsValidRepositoryName(req.Repo) {
		return nil, validationError("a valid repository name is required")
	}
	if !validation.IsValidToken(req.Token) {
		return nil, validationError("a valid token is required")
	}
	if req.Organization != "" && !validation.IsValidOwnerName(req.Organization) {
		return nil, validationError("destination organization name is invalid")
	}

	forked, err := s.gateway.CreateFork(ctx, req.Token, req.Owner, req.Repo, req.Organization)
	if err != nil {
		return nil, mapUpstream(err, upstreamMessages{
			NotFound:  "source repository not found or inaccessible",
			Forbidden: "insufficient permission or repository already forked",
			Conflict:  "fork already exists or cannot be created",
		})
	}

	return &dto.ForkResponse{
		FullName: forked.FullName,
		HTMLURL:  forked.HTMLURL,
		CloneURL: forked.CloneURL,
		SSHURL:   forked.SSHURL,
	}, nil
}

// CreateMerged creates an empty auto-initialized repository and returns
// the merge instruction set for pulling the source repositories into it.
// No git operation happens server-side.
func (s *RepositoryService) CreateMerged(ctx context.Context, req dto.CreateMergedRequest) (*dto.MergedRepoResponse, error) {
	if !validation.IsValidRepositoryName(req.Name) {
		return nil, validationError("a valid repository name is required")
	}
	if !validation.IsValidToken(req.Token) {
		return nil, validationError("a valid token is required")
	}
	if len(req.Repositories) == 0 {
		return nil, validationError("at least one source repository is required")
	}
	if len(req.Repositories) > maxMergeSources {
		return nil, validationError(fmt.Sprintf("a maximum of %d source repositories is allowed", maxMergeSources))
	}
	for i, source := range req.Repositories {
		if source.Name == "" || source.CloneURL == "" {
			return nil, validationError(fmt.Sprintf("source repository %d must carry a name and a clone URL", i+1))
		}
		// Names end up in the returned shell instructions, so they must
		// hold no shell metacharacters.
		if !validation.IsValidRepositoryName(source.Name) {
			return nil, validationError(fmt.Sprintf("source repository %d has an invalid name", i+1))
		}
	}

	description := validation.Sanitize(req.Description)

	created, err := s.gateway.CreateRepository(ctx, req.Token, req.Name, description, req.Private)
	if err != nil {
		return nil, mapUpstream(err, upstreamMessages{
			Conflict:  "repository name already exists or is invalid",
			Forbidden: "insufficient permission to create repositories",
		})
	}

	return &dto.MergedRepoResponse{
		Name:         created.Name,
		FullName:     created.FullName,
		HTMLURL:      created.HTMLURL,
		CloneURL:     created.CloneURL,
		Sources:      req.Repositories,
		Instructions: mergeInstructions(created, req.Repositories),
		Note:         mergeDisclaimer,
	}, nil
}

// mergeInstructions builds the ordered shell commands: clone the new
// repository, then for each source create a subfolder named after it,
// clone the source into that subfolder, drop its .git directory, and
// return to the parent.
func mergeInstructions(created repo.Record, sources []dto.SourceRepository) []string {
	instructions := []string{
		fmt.Sprintf("git clone %s", created.CloneURL),
		fmt.Sprintf("cd %s", created.Name),
	}
	for _, source := range sources {
		instructions = append(instructions,
			fmt.Sprintf("mkdir %s", source.Name),
			fmt.Sprintf("cd %s", source.Name),
			fmt.Sprintf("git clone %s .", source.CloneURL),
			"rm -rf .git",
			"cd ..",
		)
	}
	return instructions
}

// Contents lists the repository contents at path. Upstream statuses are
// relayed verbatim by the handler via Error.UpstreamStatus.
func (s *RepositoryService) Contents(ctx context.Context, token, owner, name, path string) ([]github.ContentEntry, error) {
	if !validation.IsValidOwnerName(owner) {
		return nil, validationError("a valid repository owner is required")
	}
	if !validation.IsValidRepositoryName(name) {
		return nil, validationError("a valid repository name is required")
	}
	if !validation.IsValidRepoPath(path) {
		return nil, validationError("repository path is invalid")
	}
	if token != "" && !validation.IsValidToken(token) {
		return nil, validationError("token format is invalid")
	}

	entries, err := s.gateway.ListContents(ctx, token, owner, name, path)
	if err != nil {
		return nil, mapUpstream(err, upstreamMessages{
			NotFound:  "repository or path not found",
			Forbidden: "access to repository contents forbidden",
		})
	}
	return entries, nil
}
