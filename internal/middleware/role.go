package middleware

import (
	"net/http"

	"loanportal/internal/domain"
	"loanportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures the authenticated user carries the given role. The
// token role is parsed against the closed role set first, so a stale or
// hand-crafted role string is rejected rather than silently mismatched.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get("role")
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		role := domain.Role(roleAny.(string))
		if !role.Valid() {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Unknown role")
			c.Abort()
			return
		}

		if role != required {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires the admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// MerchantOnly middleware requires the merchant role
func MerchantOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleMerchant)
}

// BorrowerOnly middleware requires the borrower role
func BorrowerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleBorrower)
}
