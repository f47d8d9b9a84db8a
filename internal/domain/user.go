package domain

import "time"

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
// Role dispatch everywhere goes through this closed set; there is no
// free-form role string in the system.
func (r Role) Valid() bool {
	switch r {
	case RoleBorrower, RoleMerchant, RoleAdmin:
		return true
	}
	return false
}

// User is the authentication identity. It carries credentials only;
// everything role- and display-related lives on Profile.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the role record resolved for every authenticated session.
// It is created in a second step after the User row during sign-up and
// mutated by self-edit only. Role never changes after creation.
// Shop fields are meaningful for merchants only.
type Profile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Phone       string    `json:"phone,omitempty"`
	Age         int       `json:"age,omitempty"`
	Role        Role      `json:"role"`
	ShopName    string    `json:"shop_name,omitempty"`
	ShopAddress string    `json:"shop_address,omitempty"`
	GSTIN       string    `json:"gstin,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
