package admin

import (
	"errors"
	"net/http"
	"strconv"

	"loanportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin surface; the group is expected to
// carry JWT auth plus the admin role guard.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/loans", h.ListLoans)
	group.GET("/loans/approved", h.ApprovedLoans)
	group.PATCH("/loans/:id/status", h.SetStatus)
	group.GET("/analytics", h.Analytics)
	group.GET("/stats", h.Stats)
}

func (h *Handler) ListLoans(c *gin.Context) {
	loans, err := h.service.ListLoans(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load loans")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

func (h *Handler) ApprovedLoans(c *gin.Context) {
	loans, err := h.service.ApprovedLoans(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load approved loans")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

func (h *Handler) SetStatus(c *gin.Context) {
	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Loan id must be numeric")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), loanID, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown review status")
		case errors.Is(err, ErrLoanNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Loan not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": loanID, "status": req.Status})
}

func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "ANALYTICS_FAILED", "Failed to compute analytics")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"analytics": analytics})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
