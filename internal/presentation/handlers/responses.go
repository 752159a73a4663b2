package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repoforge-core/internal/application/service"
)

// ErrorResponse is the uniform error body: a stable summary plus optional
// upstream context. Raw stack traces are never echoed.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeServiceError maps an application error onto an HTTP status and the
// uniform error body. When relayUpstreamStatus is set and the upstream
// answered with a status code, that code is relayed verbatim.
func writeServiceError(c *gin.Context, err error, relayUpstreamStatus bool) {
	var appErr *service.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "upstream request failed",
			Details: err.Error(),
		})
		return
	}

	status := statusForKind(appErr.Kind)
	if relayUpstreamStatus && appErr.UpstreamStatus != 0 {
		status = appErr.UpstreamStatus
	}
	c.JSON(status, ErrorResponse{Error: appErr.Message, Details: appErr.Details})
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
