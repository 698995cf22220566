// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. Handlers pick the most specific matching code and pass it to
// fail() with the corresponding status; clients branch on the code, not the
// message.
//
// Codes are lowercase snake_case. Generic codes mirror HTTP status semantics;
// the upload rejection codes distinguish the ways a lead file can be refused
// so the admin UI can give a precise reason.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Upload rejections:
	ErrCodeUnsupportedFormat = "unsupported_format"
	ErrCodeUnparseableFile   = "unparseable_file"
	ErrCodeSchemaInvalid     = "schema_invalid"
	ErrCodeNoAgents          = "no_agents_available"
)
