package documents

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"loanportal/internal/domain"
	"loanportal/internal/pkg/response"
	"loanportal/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the document endpoints on the authenticated
// group. Access is checked per loan inside the service, not per role
// group, because borrowers, merchants and admins all reach these.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/loans/:id/documents", h.Upload)
	protected.GET("/loans/:id/documents", h.List)
}

// Upload takes a multipart form where each file part's field name is
// the document label, e.g. a part named "Bank Statement".
func (h *Handler) Upload(c *gin.Context) {
	actor := actorFrom(c)

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Loan id must be numeric")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Failed to parse multipart form")
		return
	}

	labels := make([]string, 0, len(form.File))
	for label := range form.File {
		labels = append(labels, label)
	}
	sort.Strings(labels) // deterministic upload order

	var files []File
	for _, label := range labels {
		for _, fh := range form.File[label] {
			f, err := fh.Open()
			if err != nil {
				response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
				return
			}
			defer f.Close()
			files = append(files, File{
				Label:    label,
				Filename: fh.Filename,
				Size:     fh.Size,
				Reader:   f,
			})
		}
	}

	docs, err := h.service.UploadBatch(c.Request.Context(), actor, loanID, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoanNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Loan not found")
		case errors.Is(err, ErrNotApproved):
			response.Error(c, http.StatusConflict, "NOT_APPROVED", "Documents can be uploaded for approved loans only")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot upload documents for this loan")
		case errors.Is(err, ErrInvalidLabel):
			response.Error(c, http.StatusBadRequest, "INVALID_LABEL", err.Error())
		case errors.Is(err, ErrNoFiles):
			response.Error(c, http.StatusBadRequest, "NO_FILES", "No files uploaded")
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Each document must be 5MB or smaller")
		case errors.Is(err, storage.ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Uploaded file is empty")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload documents")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

func (h *Handler) List(c *gin.Context) {
	actor := actorFrom(c)

	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Loan id must be numeric")
		return
	}

	entries, err := h.service.List(c.Request.Context(), actor, loanID)
	if err != nil {
		switch {
		case errors.Is(err, ErrLoanNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Loan not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot view documents for this loan")
		default:
			response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list documents")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"documents": entries})
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetInt64("user_id"),
		Role:   domain.Role(c.GetString("role")),
	}
}
