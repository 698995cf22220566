// Assignment HTTP handlers.
//
// This file exposes the assignment read endpoints:
//   - GET /assignments        (role-scoped: agents see only their own rows)
//   - GET /assignments/stats  (admin-only live per-agent counts)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/AgentList/internal/domain"
	"github.com/Deepanshu8560/AgentList/internal/services"
)

// AssignmentService defines the assignment queries consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type AssignmentService interface {
	// ListFor returns the assignment view for a principal: scoped for agents,
	// unfiltered for admins.
	ListFor(ctx context.Context, principalID string, role domain.Role, limit int) ([]domain.Assignment, error)
	// Stats returns live per-agent assignment counts for the current roster.
	Stats(ctx context.Context) ([]services.AgentStats, error)
}

// ListAssignmentsResponse wraps an assignment listing.
type ListAssignmentsResponse struct {
	Assignments []domain.Assignment `json:"assignments"`
	Count       int                 `json:"count"`
}

// StatsResponse wraps the per-agent distribution statistics.
type StatsResponse struct {
	Stats []services.AgentStats `json:"stats"`
}

// ListAssignments godoc
// @ID          listAssignments
// @Summary     List assignments
// @Description Admins see every assignment; agents see only the assignments held by their own account. Newest first.
// @Tags        Assignments
// @Produce     json
// @Security    BearerAuth
//
// @Param       limit  query  int  false  "Result cap (default 10000)"  minimum(1)
//
// @Success     200  {object}  handlers.ListAssignmentsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /assignments [get]
func (h *Handlers) ListAssignments(c *gin.Context) {
	claims, okP := principal(c)
	if !okP {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing principal")
		return
	}

	items, err := h.asgSvc.ListFor(c.Request.Context(), claims.UserID, claims.Role, limitQuery(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ListAssignmentsResponse{Assignments: items, Count: len(items)})
}

// AssignmentStats godoc
// @ID          assignmentStats
// @Summary     Per-agent assignment statistics
// @Description For each agent currently on the roster, the live count of assignments referencing it.
// @Tags        Assignments
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.StatsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /assignments/stats [get]
func (h *Handlers) AssignmentStats(c *gin.Context) {
	stats, err := h.asgSvc.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, StatsResponse{Stats: stats})
}
