package auth

import (
	"context"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DB() *gorm.DB
}

type ProfileRepositoryInterface interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// Mailer delivers account emails. The portal only dispatches the reset
// message; the reset link flow itself is completed out of band.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, redirectURL string) error
}
