// Upload HTTP handlers.
//
// This file exposes the admin-only ingestion endpoints:
//   - POST /uploads  (multipart lead file; parse, validate, distribute)
//   - GET  /uploads  (ingestion history, newest first)
//
// The upload handler is where parse failures are translated into the precise
// 400 codes the admin UI branches on: unsupported_format, unparseable_file,
// schema_invalid, and no_agents_available.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/AgentList/internal/domain"
	"github.com/Deepanshu8560/AgentList/internal/http/middleware"
	"github.com/Deepanshu8560/AgentList/internal/leadfile"
	"github.com/Deepanshu8560/AgentList/internal/services"
)

// DistributionService defines the ingestion operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type DistributionService interface {
	// Distribute records an upload and round-robins its rows across the roster.
	Distribute(ctx context.Context, uploadedBy, filename string, rows []leadfile.Record) (*services.DistributionSummary, error)
	// ListUploads returns past ingestion events, newest first.
	ListUploads(ctx context.Context, limit int) ([]domain.Upload, error)
}

// ListUploadsResponse wraps the ingestion history for list responses.
type ListUploadsResponse struct {
	Uploads []domain.Upload `json:"uploads"`
	Count   int             `json:"count"`
}

// UploadFile godoc
// @ID          uploadFile
// @Summary     Upload and distribute a lead file
// @Description Accepts a CSV/XLSX file under the multipart field "file", validates the FirstName/Phone/Notes schema, and distributes rows round-robin across the agent roster.
// @Tags        Uploads
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       file  formData  file  true  "Lead file (.csv, .xlsx, .xls)"
//
// @Success     201  {object}  services.DistributionSummary
// @Failure     400  {object}  handlers.ErrorResponse  "unsupported_format / unparseable_file / schema_invalid / no_agents_available"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /uploads [post]
func (h *Handlers) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, `multipart field "file" is required`)
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read uploaded file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		// MaxBytesReader surfaces here when the body cap is exceeded.
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read uploaded file")
		return
	}

	rows, err := leadfile.Parse(fh.Filename, data)
	if err != nil {
		var schemaErr *leadfile.SchemaError
		switch {
		case errors.Is(err, leadfile.ErrUnsupportedFormat):
			middleware.ObserveUpload("rejected", 0)
			fail(c, http.StatusBadRequest, ErrCodeUnsupportedFormat, "only .csv, .xlsx and .xls files are accepted")
		case errors.As(err, &schemaErr):
			middleware.ObserveUpload("rejected", 0)
			fail(c, http.StatusBadRequest, ErrCodeSchemaInvalid,
				fmt.Sprintf("missing required columns: %s", strings.Join(schemaErr.Missing, ", ")))
		case errors.Is(err, leadfile.ErrUnparseable):
			middleware.ObserveUpload("rejected", 0)
			fail(c, http.StatusBadRequest, ErrCodeUnparseableFile, "file could not be parsed")
		default:
			middleware.ObserveUpload("failed", 0)
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	claims, _ := principal(c)
	uploadedBy := ""
	if claims != nil {
		uploadedBy = claims.Email
	}

	sum, err := h.distSvc.Distribute(c.Request.Context(), uploadedBy, fh.Filename, rows)
	if err != nil {
		if errors.Is(err, services.ErrNoAgentsAvailable) {
			middleware.ObserveUpload("rejected", 0)
			fail(c, http.StatusBadRequest, ErrCodeNoAgents, "no agents available to receive leads")
			return
		}
		middleware.ObserveUpload("failed", 0)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	middleware.ObserveUpload("distributed", sum.TotalRecords)
	lg := middleware.LoggerFrom(c)
	lg.Info().
		Str("upload_id", sum.UploadID).
		Int("total_records", sum.TotalRecords).
		Int("agents_count", sum.AgentsCount).
		Msg("leads distributed")

	ok(c, http.StatusCreated, sum)
}

// ListUploads godoc
// @ID          listUploads
// @Summary     List past uploads
// @Description Returns ingestion history, newest first, capped by the optional "limit" query parameter.
// @Tags        Uploads
// @Produce     json
// @Security    BearerAuth
//
// @Param       limit  query  int  false  "Result cap (default 1000)"  minimum(1)
//
// @Success     200  {object}  handlers.ListUploadsResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin only"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /uploads [get]
func (h *Handlers) ListUploads(c *gin.Context) {
	uploads, err := h.distSvc.ListUploads(c.Request.Context(), limitQuery(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ListUploadsResponse{Uploads: uploads, Count: len(uploads)})
}
