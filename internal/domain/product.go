package domain

import "time"

// Product is owned by the merchant who created it and visible to every
// borrower. Lifecycle is independent of loans.
type Product struct {
	ProductID   int64     `gorm:"column:product_id;primaryKey" json:"product_id"`
	UserID      int64     `gorm:"column:user_id" json:"user_id"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Price       float64   `gorm:"column:price" json:"price"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string { return "products" }
