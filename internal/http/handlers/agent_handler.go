// Agent roster HTTP handlers.
//
// This file exposes the admin-only roster endpoints:
//   - POST   /agents       (create)
//   - GET    /agents       (list)
//   - PUT    /agents/{id}  (partial update)
//   - DELETE /agents/{id}  (delete, cascades assignments)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/AgentList/internal/domain"
	"github.com/Deepanshu8560/AgentList/internal/services"
)

// AgentService defines the roster operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use and honor the provided
// context.
type AgentService interface {
	// Create adds an agent; the email must be unused by any principal.
	Create(ctx context.Context, name, email, mobile, password string) (*domain.Agent, error)
	// List returns the roster in its stable distribution order.
	List(ctx context.Context) ([]domain.Agent, error)
	// Update applies a partial field set to an agent.
	Update(ctx context.Context, id string, upd services.AgentUpdate) error
	// Delete removes an agent and cascades to its assignments.
	Delete(ctx context.Context, id string) error
}

//
// DTOs
//

// CreateAgentRequest is the JSON payload for creating an agent.
type CreateAgentRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255" example:"Ravi Kumar"`
	Email    string `json:"email" binding:"required,email" example:"ravi@example.com"`
	Mobile   string `json:"mobile" binding:"required" example:"+91 98765 43210"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret!"`
}

// UpdateAgentRequest is the JSON payload for a partial agent update. Omitted
// fields are left untouched.
type UpdateAgentRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Mobile   *string `json:"mobile,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
}

// ListAgentsResponse wraps the roster for list responses.
type ListAgentsResponse struct {
	Agents []domain.Agent `json:"agents"`
	Count  int            `json:"count"`
}

//
// Handlers
//

// CreateAgent godoc
// @ID          createAgent
// @Summary     Add an agent to the roster
// @Description Creates an agent account. The email must be unused by any admin or agent.
// @Tags        Agents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateAgentRequest  true  "Agent payload"
//
// @Success     201  {object}  domain.Agent
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /agents [post]
func (h *Handlers) CreateAgent(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, email, mobile and password are required")
		return
	}

	agent, err := h.agentSvc.Create(c.Request.Context(), req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fail(c, http.StatusConflict, ErrCodeConflict, "email already registered")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, agent)
}

// ListAgents godoc
// @ID          listAgents
// @Summary     List the agent roster
// @Description Returns all agents in distribution order. Password hashes are never serialized.
// @Tags        Agents
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ListAgentsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /agents [get]
func (h *Handlers) ListAgents(c *gin.Context) {
	agents, err := h.agentSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ListAgentsResponse{Agents: agents, Count: len(agents)})
}

// UpdateAgent godoc
// @ID          updateAgent
// @Summary     Update an agent
// @Description Applies a partial update. A provided password is re-hashed; a provided email must stay unique.
// @Tags        Agents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "Agent ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateAgentRequest  true  "Fields to change"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     404  {object}  handlers.ErrorResponse  "Agent not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /agents/{id} [put]
func (h *Handlers) UpdateAgent(c *gin.Context) {
	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	upd := services.AgentUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
	}
	err := h.agentSvc.Update(c.Request.Context(), c.Param("id"), upd)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrAgentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "agent not found")
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, "email already registered")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// DeleteAgent godoc
// @ID          deleteAgent
// @Summary     Delete an agent
// @Description Removes the agent and deletes all assignments held by it. Orphaned leads are not redistributed.
// @Tags        Agents
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Agent ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     404  {object}  handlers.ErrorResponse  "Agent not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /agents/{id} [delete]
func (h *Handlers) DeleteAgent(c *gin.Context) {
	err := h.agentSvc.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrAgentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "agent not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
