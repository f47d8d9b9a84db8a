package admin

import (
	"context"

	"loanportal/internal/domain"
)

type LoanRepositoryInterface interface {
	ListAll(ctx context.Context) ([]domain.Loan, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus) error
}

type ProfileRepositoryInterface interface {
	GetByUserIDs(ctx context.Context, userIDs []int64) ([]domain.Profile, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

type ProductRepositoryInterface interface {
	Count(ctx context.Context) (int64, error)
}
