package repository

import (
	"context"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	var l domain.Loan
	tx := r.db.WithContext(ctx).First(&l, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &l, nil
}

// ListAll returns every loan, newest first. The admin dashboard reads the
// full set; there is no pagination in any flow.
func (r *LoanRepository) ListAll(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&loans)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return loans, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error) {
	var loans []domain.Loan
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&loans)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return loans, nil
}

func (r *LoanRepository) ListByReferrer(ctx context.Context, merchantUserID int64) ([]domain.Loan, error) {
	var loans []domain.Loan
	tx := r.db.WithContext(ctx).
		Where("referred_by = ?", merchantUserID).
		Order("created_at DESC").
		Find(&loans)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return loans, nil
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	var loans []domain.Loan
	tx := r.db.WithContext(ctx).
		Where("review_status = ?", status).
		Order("created_at DESC").
		Find(&loans)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return loans, nil
}

// UpdateStatus overwrites review_status unconditionally. There is no guard
// against re-transitioning a terminal loan and no audit trail; a concurrent
// update is last-write-wins.
func (r *LoanRepository) UpdateStatus(ctx context.Context, id int64, status domain.LoanStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Loan{}).
		Where("id = ?", id).
		Update("review_status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateDocuments replaces the documents map in a single update so a batch
// upload lands atomically or not at all.
func (r *LoanRepository) UpdateDocuments(ctx context.Context, id int64, docs domain.DocumentMap) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Loan{}).
		Where("id = ?", id).
		Update("documents", docs)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LoanRepository) DB() *gorm.DB { return r.db }
