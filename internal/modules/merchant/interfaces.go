package merchant

import (
	"context"

	"loanportal/internal/domain"
)

type LoanRepositoryInterface interface {
	Create(ctx context.Context, l *domain.Loan) error
	ListByReferrer(ctx context.Context, merchantUserID int64) ([]domain.Loan, error)
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	ListByOwner(ctx context.Context, userID int64) ([]domain.Product, error)
	DeleteByIDAndOwner(ctx context.Context, productID, userID int64) error
}

type ProfileRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}
