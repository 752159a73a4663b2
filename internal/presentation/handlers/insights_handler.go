package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repoforge-core/internal/analytics"
	"repoforge-core/internal/comparison"
	"repoforge-core/internal/domain/repo"
)

// Comparison modes accepted by CompareRepos.
const (
	modeTwo      = "two"
	modeMultiple = "multiple"
	modeBest     = "best"
)

// InsightsHandler serves the analytics and comparison endpoints. Both
// operate on repository records supplied directly in the request body;
// nothing is fetched upstream.
type InsightsHandler struct{}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler() *InsightsHandler {
	return &InsightsHandler{}
}

// AnalyzeRequest is the analyze-repositories request body.
type AnalyzeRequest struct {
	Repositories []repo.Record `json:"repositories"`
}

// CompareRequest is the compare-repositories request body.
type CompareRequest struct {
	Repositories []repo.Record `json:"repositories"`
	Mode         string        `json:"mode"`
	Criteria     string        `json:"criteria,omitempty"`
}

// AnalyzeRepos handles POST /api/analyze-repos
// @Summary Analyze repositories
// @Description Computes the aggregate analytics report over the supplied repository records
// @Tags Insights
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Repositories to analyze"
// @Success 200 {object} analytics.Report
// @Failure 400 {object} ErrorResponse
// @Router /analyze-repos [post]
func (h *InsightsHandler) AnalyzeRepos(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if len(req.Repositories) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "a non-empty repositories array is required"})
		return
	}

	c.JSON(http.StatusOK, analytics.BuildReport(req.Repositories))
}

// CompareRepos handles POST /api/compare-repos
// @Summary Compare repositories
// @Description Compares the supplied records in the selected mode: two, multiple, or best
// @Tags Insights
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Repositories and comparison mode"
// @Success 200 {object} comparison.PairComparison
// @Failure 400 {object} ErrorResponse
// @Router /compare-repos [post]
func (h *InsightsHandler) CompareRepos(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	switch req.Mode {
	case modeTwo:
		if len(req.Repositories) != 2 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mode 'two' requires exactly 2 repositories"})
			return
		}
		c.JSON(http.StatusOK, comparison.CompareTwo(req.Repositories[0], req.Repositories[1]))
	case modeMultiple:
		if len(req.Repositories) < 2 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mode 'multiple' requires at least 2 repositories"})
			return
		}
		c.JSON(http.StatusOK, comparison.CompareMultiple(req.Repositories))
	case modeBest:
		if len(req.Repositories) < 2 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mode 'best' requires at least 2 repositories"})
			return
		}
		c.JSON(http.StatusOK, comparison.RankBest(req.Repositories, req.Criteria))
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown comparison mode, expected 'two', 'multiple', or 'best'"})
	}
}
