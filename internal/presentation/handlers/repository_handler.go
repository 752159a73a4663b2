package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repoforge-core/internal/application/dto"
	"repoforge-core/internal/application/service"
	"repoforge-core/internal/middleware"
)

// RepositoryHandler handles repository-related HTTP requests.
type RepositoryHandler struct {
	repositoryService *service.RepositoryService
}

// NewRepositoryHandler creates a new repository handler.
func NewRepositoryHandler(repositoryService *service.RepositoryService) *RepositoryHandler {
	return &RepositoryHandler{repositoryService: repositoryService}
}

// SearchRepos handles GET /api/search-repos
// @Summary Search a user's or organization's repositories
// @Description Lists one page of repositories for the given owner, relaying the caller's rate-limit quota
// @Tags Repositories
// @Accept json
// @Produce json
// @Param username query string true "User or organization name"
// @Param type query string false "Listing type" Enums(all, owner, member) default(all)
// @Param sort query string false "Sort key" Enums(updated, created, pushed, full_name) default(updated)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(100) maximum(100)
// @Success 200 {object} dto.RepositoryPage
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /search-repos [get]
func (h *RepositoryHandler) SearchRepos(c *gin.Context) {
	params := service.SearchParams{
		Owner:   c.Query("username"),
		Token:   middleware.Token(c),
		Type:    c.Query("type"),
		Sort:    c.Query("sort"),
		Page:    c.Query("page"),
		PerPage: c.DefaultQuery("per_page", "100"),
	}

	page, err := h.repositoryService.Search(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ForkRepo handles POST /api/fork-repo
// @Summary Fork a repository
// @Description Forks the named repository on behalf of the token owner, optionally into an organization
// @Tags Repositories
// @Accept json
// @Produce json
// @Param request body dto.ForkRequest true "Fork request"
// @Success 200 {object} dto.ForkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /fork-repo [post]
func (h *RepositoryHandler) ForkRepo(c *gin.Context) {
	var req dto.ForkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	forked, err := h.repositoryService.Fork(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, forked)
}

// CreateMergedRepo handles POST /api/create-merged-repo
// @Summary Create a merged-repository shell
// @Description Creates an empty auto-initialized repository and returns manual merge instructions for up to 50 sources
// @Tags Repositories
// @Accept json
// @Produce json
// @Param request body dto.CreateMergedRequest true "Merge request"
// @Success 200 {object} dto.MergedRepoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /create-merged-repo [post]
func (h *RepositoryHandler) CreateMergedRepo(c *gin.Context) {
	var req dto.CreateMergedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	merged, err := h.repositoryService.CreateMerged(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, merged)
}

// RepoContent handles GET /api/repo-content
// @Summary List repository contents
// @Description Returns the contents listing at the given path, relaying the upstream status on failure
// @Tags Repositories
// @Accept json
// @Produce json
// @Param owner query string true "Repository owner"
// @Param repo query string true "Repository name"
// @Param path query string false "Path within the repository (defaults to root)"
// @Success 200 {array} github.ContentEntry
// @Failure 400 {object} ErrorResponse
// @Router /repo-content [get]
func (h *RepositoryHandler) RepoContent(c *gin.Context) {
	entries, err := h.repositoryService.Contents(
		c.Request.Context(),
		middleware.Token(c),
		c.Query("owner"),
		c.Query("repo"),
		c.Query("path"),
	)
	if err != nil {
		writeServiceError(c, err, true)
		return
	}
	c.JSON(http.StatusOK, entries)
}
