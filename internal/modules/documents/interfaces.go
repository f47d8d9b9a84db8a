package documents

import (
	"context"

	"loanportal/internal/domain"
)

type LoanRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	UpdateDocuments(ctx context.Context, id int64, docs domain.DocumentMap) error
}
