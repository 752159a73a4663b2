package service

import (
	"errors"
	"net/http"

	"repoforge-core/internal/github"
)

// ErrorKind classifies application errors for the handler layer.
type ErrorKind int

const (
	// KindValidation is the client's fault, detected before any upstream call.
	KindValidation ErrorKind = iota
	// KindUnauthorized is an invalid or expired token.
	KindUnauthorized
	// KindForbidden covers insufficient scope, rate limits, and operations
	// GitHub disallows.
	KindForbidden
	// KindNotFound is an owner, repository, or path missing upstream.
	KindNotFound
	// KindConflict is a resource that already exists or fails semantic
	// validation upstream.
	KindConflict
	// KindUpstream is any other upstream or network failure.
	KindUpstream
)

// Error is an application-boundary error. Message is a stable summary
// independent of upstream wording; Details carries the best-available
// upstream message. UpstreamStatus is set when the upstream answered with
// a status code, for endpoints that relay it verbatim.
type Error struct {
	Kind           ErrorKind
	Message        string
	Details        string
	UpstreamStatus int
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// upstreamMessages selects stable summaries per upstream status class.
type upstreamMessages struct {
	NotFound     string
	Forbidden    string
	Conflict     string
	Unauthorized string
}

// mapUpstream converts a gateway error into an application Error using the
// per-operation summaries. Unmatched statuses and network failures map to
// KindUpstream with the upstream message attached as details.
func mapUpstream(err error, messages upstreamMessages) *Error {
	var apiErr *github.APIError
	if !errors.As(err, &apiErr) {
		return &Error{Kind: KindUpstream, Message: "upstream request failed", Details: err.Error()}
	}

	appErr := &Error{Details: apiErr.Message, UpstreamStatus: apiErr.StatusCode}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		appErr.Kind = KindUnauthorized
		appErr.Message = messages.Unauthorized
	case http.StatusForbidden:
		appErr.Kind = KindForbidden
		appErr.Message = messages.Forbidden
	case http.StatusNotFound:
		appErr.Kind = KindNotFound
		appErr.Message = messages.NotFound
	case http.StatusUnprocessableEntity:
		appErr.Kind = KindConflict
		appErr.Message = messages.Conflict
	default:
		appErr.Kind = KindUpstream
		appErr.Message = "upstream request failed"
	}
	if appErr.Message == "" {
		appErr.Kind = KindUpstream
		appErr.Message = "upstream request failed"
	}
	return appErr
}
