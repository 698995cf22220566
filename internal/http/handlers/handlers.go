// Handler wiring.
//
// Handlers groups the HTTP endpoints for auth, roster management, uploads,
// and assignment queries. It depends on abstract service interfaces so
// transport concerns stay separate from business logic and tests can swap in
// fakes.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/AgentList/internal/auth"
	"github.com/Deepanshu8560/AgentList/internal/http/middleware"
	"github.com/Deepanshu8560/AgentList/internal/utils"
)

// Handlers bundles all endpoint implementations and their service
// dependencies.
type Handlers struct {
	authSvc  AuthService
	agentSvc AgentService
	distSvc  DistributionService
	asgSvc   AssignmentService
}

// New constructs a Handlers instance bound to the given services.
func New(authSvc AuthService, agentSvc AgentService, distSvc DistributionService, asgSvc AssignmentService) *Handlers {
	return &Handlers{authSvc: authSvc, agentSvc: agentSvc, distSvc: distSvc, asgSvc: asgSvc}
}

// principal returns the verified token claims attached by the auth
// middleware. Handlers behind Authenticate can assume ok == true; the guard
// exists so a miswired route fails visibly instead of acting on an empty
// identity.
func principal(c *gin.Context) (*auth.Claims, bool) {
	return middleware.PrincipalFrom(c)
}

// limitQuery parses the optional "limit" query parameter. Absent, invalid,
// or negative values return 0, which repositories replace with their default
// result cap.
func limitQuery(c *gin.Context) int {
	return utils.ClampNonNegative(utils.AtoiDefault(c.Query("limit"), 0))
}
