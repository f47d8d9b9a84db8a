package merchant

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

// RegisterRoutes mounts the merchant surface; the group is expected to
// carry JWT auth plus the merchant role guard.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/referrals", h.ReferLoan)
	group.GET("/referrals", h.Referrals)
	group.GET("/products", h.MyProducts)
	group.POST("/products", h.CreateProduct)
	group.DELETE("/products/:id", h.DeleteProduct)
	group.PUT("/shop", h.UpdateShop)
}

func (h *Handler) ReferLoan(c *gin.Context) {
	merchantID := c.GetInt64("user_id")

	var req ReferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid referral form")
		return
	}

	loan, err := h.service.ReferLoan(c.Request.Context(), merchantID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REFER_FAILED", "Failed to submit referral")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"loan": loan})
}

func (h *Handler) Referrals(c *gin.Context) {
	merchantID := c.GetInt64("user_id")

	referrals, err := h.service.Referrals(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load referrals")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"referrals": referrals})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	merchantID := c.GetInt64("user_id")

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), merchantID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create product")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) MyProducts(c *gin.Context) {
	merchantID := c.GetInt64("user_id")

	products, err := h.service.MyProducts(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load products")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	merchantID := c.GetInt64("user_id")

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Product id must be numeric")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), merchantID, productID); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete product")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": productID})
}

func (h *Handler) UpdateShop(c *gin.Context) {
	merchantID := c.GetInt64("user_id")

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid shop details")
		return
	}

	profile, err := h.service.UpdateShop(c.Request.Context(), merchantID, req)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.Error(c, http.StatusForbidden, "PROFILE_MISSING", "Account has no profile; contact support")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update shop details")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}
