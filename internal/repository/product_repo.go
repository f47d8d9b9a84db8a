package repository

import (
	"context"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// ListAll is the borrower-facing catalog: products are world-readable.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&products)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return products, nil
}

func (r *ProductRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Product, error) {
	var products []domain.Product
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&products)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return products, nil
}

// DeleteByIDAndOwner removes exactly the row matching product_id, and only
// when the caller owns it. Returns gorm.ErrRecordNotFound when nothing
// matched so the handler can distinguish "not yours" from success.
func (r *ProductRepository) DeleteByIDAndOwner(ctx context.Context, productID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Delete(&domain.Product{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count is used by the admin stats endpoint.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n)
	return n, tx.Error
}

func (r *ProductRepository) DB() *gorm.DB { return r.db }
