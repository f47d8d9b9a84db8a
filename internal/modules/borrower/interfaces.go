package borrower

import (
	"context"

	"loanportal/internal/domain"
)

type LoanRepositoryInterface interface {
	Create(ctx context.Context, l *domain.Loan) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error)
}

type ProductRepositoryInterface interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
}
