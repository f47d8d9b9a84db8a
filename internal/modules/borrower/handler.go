package borrower

import (
	"errors"
	"net/http"

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

// RegisterRoutes mounts the borrower surface; the group is expected to
// carry JWT auth plus the borrower role guard.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/loans", h.Apply)
	group.GET("/loans", h.MyLoans)
	group.GET("/products", h.Products)
}

// RegisterSharedRoutes mounts the catalog on the plain authenticated
// group: every role can browse products.
func (h *Handler) RegisterSharedRoutes(protected *gin.RouterGroup) {
	protected.GET("/products", h.Products)
}

// Apply accepts a multipart application form. The aadhaar_image and
// pan_image parts are optional; when present they are stored and linked
// into the loan's documents map.
func (h *Handler) Apply(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application form")
		return
	}

	var files []ApplyFile
	for part, label := range map[string]string{
		"aadhaar_image": domain.DocAadharImage,
		"pan_image":     domain.DocPANCard,
	} {
		fh, err := c.FormFile(part)
		if err != nil {
			continue // part absent
		}
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
			return
		}
		defer f.Close()
		files = append(files, ApplyFile{
			Label:    label,
			Filename: fh.Filename,
			Size:     fh.Size,
			Reader:   f,
		})
	}

	loan, err := h.service.Apply(c.Request.Context(), userID, req, files)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Each document must be 5MB or smaller")
		case errors.Is(err, storage.ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Uploaded file is empty")
		case errors.Is(err, ErrUploadFailed):
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store documents")
		default:
			response.Error(c, http.StatusInternalServerError, "APPLY_FAILED", "Failed to submit application")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"loan": loan})
}

func (h *Handler) MyLoans(c *gin.Context) {
	userID := c.GetInt64("user_id")

	loans, err := h.service.MyLoans(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load applications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

func (h *Handler) Products(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load products")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products})
}
