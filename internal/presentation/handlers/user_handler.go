package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repoforge-core/internal/application/service"
	"repoforge-core/internal/middleware"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser handles GET /api/user
// @Summary Get the authenticated user
// @Description Returns the token owner's consolidated profile plus their rate-limit snapshot
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /user [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetAuthenticatedUser(c.Request.Context(), middleware.Token(c))
	if err != nil {
		writeServiceError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ValidateToken handles GET /api/validate-token
// @Summary Validate the caller's token
// @Description Reports token validity and granted scopes; always answers 200 with failure encoded in the body
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TokenValidationResponse
// @Router /validate-token [get]
func (h *UserHandler) ValidateToken(c *gin.Context) {
	result := h.userService.ValidateToken(c.Request.Context(), middleware.Token(c))
	c.JSON(http.StatusOK, result)
}
