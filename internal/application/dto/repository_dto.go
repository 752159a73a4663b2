package dto

import (
	"repoforge-core/internal/domain/repo"
	"repoforge-core/internal/github"
)

// Pagination summarizes one page of a repository listing. HasMore is an
// approximation inferred from whether the page came back full; it can be
// wrong on exact-multiple boundaries, and the true total is not known
// without an extra call.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

// RepositoryPage is the search-repositories response.
type RepositoryPage struct {
	AccountType string           `json:"account_type"`
	Repos       []repo.Record    `json:"repos"`
	Pagination  Pagination       `json:"pagination"`
	RateLimit   *github.RateInfo `json:"rate_limit,omitempty"`
}

// ForkRequest is the fork-repository request body. The token travels in
// the body on write operations, never in the query string.
type ForkRequest struct {
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	Token        string `json:"token"`
	Organization string `json:"organization,omitempty"`
}

// ForkResponse describes the newly created fork.
type ForkResponse struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	CloneURL string `json:"clone_url"`
	SSHURL   string `json:"ssh_url"`
}

// SourceRepository is one source entry of a merge request: at minimum a
// name and a clone URL.
type SourceRepository struct {
	Name     string `json:"name"`
	CloneURL string `json:"clone_url"`
}

// CreateMergedRequest is the create-merged-repository request body.
type CreateMergedRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Repositories []SourceRepository `json:"repositories"`
	Token        string             `json:"token"`
	Private      bool               `json:"private,omitempty"`
}

// MergedRepoResponse describes the created shell repository together with
// the merge instruction set. The instructions are generated for manual
// execution; the server never runs them.
type MergedRepoResponse struct {
	Name         string             `json:"name"`
	FullName     string             `json:"full_name"`
	HTMLURL      string             `json:"html_url"`
	CloneURL     string             `json:"clone_url"`
	Sources      []SourceRepository `json:"sources"`
	Instructions []string           `json:"instructions"`
	Note         string             `json:"note"`
}
