package auth

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=6" validate:"required,min=6"`
	Username string `json:"username" binding:"required" validate:"required"`
	Phone    string `json:"phone"`
	Age      *int   `json:"age"`
	Role     string `json:"role" binding:"required" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Age      *int   `json:"age"`
}

type PasswordResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	RedirectURL string `json:"redirect_url"`
}

// UserResponse is the profile shape returned by auth endpoints.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Phone       string `json:"phone,omitempty"`
	Age         int    `json:"age,omitempty"`
	Role        string `json:"role"`
	ShopName    string `json:"shop_name,omitempty"`
	ShopAddress string `json:"shop_address,omitempty"`
	GSTIN       string `json:"gstin,omitempty"`
	CreatedAt   string `json:"created_at"`
}
