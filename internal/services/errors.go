// Package services defines the business logic for authentication, roster
// management, and lead distribution. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; mapping
// them to user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrEmailTaken indicates the email is already registered to some
	// principal, admin or agent. The two kinds share one login namespace.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login fails, either because no
	// principal carries the email or because password verification failed.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAgentNotFound indicates that the referenced agent does not exist.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrNoAgentsAvailable is returned when a distribution is attempted
	// against an empty roster. Nothing is persisted in that case.
	ErrNoAgentsAvailable = errors.New("no agents available for distribution")
)
