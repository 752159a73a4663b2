// Package validation contains the input validation and sanitization
// utilities shared by the API handlers. All functions are pure and total:
// they never panic and always return a definite result, so callers can
// branch on the outcome and answer with a client error.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxOwnerNameLength = 39
	maxRepoNameLength  = 100
	maxPathLength      = 1000
	maxSanitizedLength = 1000

	minTokenLength = 40
	maxTokenLength = 255

	// DefaultPerPage mirrors the GitHub API default page size.
	DefaultPerPage = 30
	// MaxPerPage is the upper bound the GitHub API accepts.
	MaxPerPage = 100
)

// ownerNamePattern follows GitHub's account naming rules: alphanumeric and
// hyphens only, no leading or trailing hyphen. Length is enforced separately.
var ownerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// repoNamePattern allows letters, digits, dots, underscores, and hyphens.
var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// repoPathPattern allows the repoNamePattern characters plus path separators.
var repoPathPattern = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)

// IsValidOwnerName reports whether s is a well-formed GitHub user or
// organization name: 1-39 characters, alphanumeric or hyphen, not starting
// or ending with a hyphen.
func IsValidOwnerName(s string) bool {
	if s == "" || len(s) > maxOwnerNameLength {
		return false
	}
	return ownerNamePattern.MatchString(s)
}

// IsValidRepositoryName reports whether s is a well-formed repository name:
// 1-100 characters drawn from letters, digits, '.', '_', and '-'.
func IsValidRepositoryName(s string) bool {
	if s == "" || len(s) > maxRepoNameLength {
		return false
	}
	return repoNamePattern.MatchString(s)
}

// IsValidToken reports whether s has the shape of a personal access token.
// This is a length check only; liveness and scopes are the upstream API's
// to decide.
func IsValidToken(s string) bool {
	return len(s) >= minTokenLength && len(s) <= maxTokenLength
}

// Sanitize normalizes free text: angle brackets are stripped, surrounding
// whitespace is trimmed, and the result is truncated to 1000 characters.
// Sanitize never rejects; callers must still validate format afterwards.
// It is idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxSanitizedLength {
		s = string(runes[:maxSanitizedLength])
	}
	return strings.TrimSpace(s)
}

// IsValidRepoPath reports whether p is safe to place in a contents URL.
// An empty path is valid and addresses the repository root. Leading
// slashes, backslashes, and ".." segments are rejected to keep path
// traversal out of the proxied URL.
func IsValidRepoPath(p string) bool {
	if p == "" {
		return true
	}
	if len(p) > maxPathLength {
		return false
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return false
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return false
		}
	}
	return repoPathPattern.MatchString(p)
}

// NormalizePagination coerces raw page and per-page query values into the
// ranges the GitHub API accepts. The page floors at 1 on non-numeric,
// negative, or zero input. The per-page value defaults to 30 on
// non-numeric or zero input and is clamped to [1,100] otherwise.
func NormalizePagination(pageRaw, perPageRaw string) (page, perPage int) {
	page = 1
	if n, err := strconv.Atoi(strings.TrimSpace(pageRaw)); err == nil && n > 0 {
		page = n
	}

	perPage = DefaultPerPage
	if n, err := strconv.Atoi(strings.TrimSpace(perPageRaw)); err == nil && n != 0 {
		switch {
		case n < 1:
			perPage = 1
		case n > MaxPerPage:
			perPage = MaxPerPage
		default:
			perPage = n
		}
	}
	return page, perPage
}

// NormalizeSortKey returns key when it appears in allowed, and the first
// allowed key (the default) otherwise.
func NormalizeSortKey(key string, allowed []string) string {
	for _, candidate := range allowed {
		if key == candidate {
			return key
		}
	}
	return allowed[0]
}
