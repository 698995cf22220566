// Auth HTTP handlers.
//
// This file exposes the public authentication endpoints:
//   - POST /auth/register-admin  (create an admin account, returns a token)
//   - POST /auth/login           (admin or agent login, returns a token)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/AgentList/internal/domain"
	"github.com/Deepanshu8560/AgentList/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService defines the authentication operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type AuthService interface {
	// RegisterAdmin creates an admin account and issues a session token.
	RegisterAdmin(ctx context.Context, name, email, password string) (*domain.Admin, string, error)
	// Login authenticates an admin or agent and issues a session token.
	Login(ctx context.Context, email, password string) (*services.Principal, string, error)
}

//
// DTOs
//

// RegisterAdminRequest is the JSON payload for admin self-registration.
type RegisterAdminRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255" example:"Priya Sharma"`
	Email    string `json:"email" binding:"required,email" example:"priya@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret!"`
}

// LoginRequest is the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"priya@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// AuthResponse carries a session token and the authenticated principal.
type AuthResponse struct {
	Token string             `json:"token"`
	User  services.Principal `json:"user"`
}

//
// Handlers
//

// RegisterAdmin godoc
// @ID          registerAdmin
// @Summary     Register an admin account
// @Description Creates an admin and returns a session token. Emails are unique across admins and agents.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterAdminRequest  true  "Registration payload"
//
// @Success     201  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/register-admin [post]
func (h *Handlers) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, email and password are required")
		return
	}

	admin, token, err := h.authSvc.RegisterAdmin(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			fail(c, http.StatusConflict, ErrCodeConflict, "email already registered")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusCreated, AuthResponse{
		Token: token,
		User: services.Principal{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  admin.Role,
		},
	})
}

// Login godoc
// @ID          login
// @Summary     Log in as admin or agent
// @Description Verifies credentials against the admin set first, then agents, and returns a session token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}

	principal, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, AuthResponse{Token: token, User: *principal})
}
