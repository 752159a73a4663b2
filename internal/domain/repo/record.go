// Package repo defines the repository record consumed by the analytics,
// comparison, and proxy layers. Records are snapshots of GitHub API
// responses and are never mutated after construction.
package repo

import "time"

// License holds the license information attached to a repository.
type License struct {
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id,omitempty"`
}

// Record represents a GitHub repository as returned by the API.
type Record struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description,omitempty"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	Watchers      int       `json:"watchers_count"`
	OpenIssues    int       `json:"open_issues_count"`
	Size          int       `json:"size"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
	Topics        []string  `json:"topics,omitempty"`
	License       *License  `json:"license,omitempty"`
	CloneURL      string    `json:"clone_url,omitempty"`
	SSHURL        string    `json:"ssh_url,omitempty"`
	HTMLURL       string    `json:"html_url,omitempty"`
	DefaultBranch string    `json:"default_branch,omitempty"`
}

// LicenseName returns the license name or an empty string when no license
// is attached.
func (r Record) LicenseName() string {
	if r.License == nil {
		return ""
	}
	return r.License.Name
}

// Visibility returns the repository visibility as a label.
func (r Record) Visibility() string {
	if r.Private {
		return "private"
	}
	return "public"
}
