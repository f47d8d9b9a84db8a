package repository

import (
	"context"
	"time"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex"`
	Email       string    `gorm:"column:email"`
	Username    string    `gorm:"column:username"`
	Phone       *string   `gorm:"column:phone"`
	Age         *int      `gorm:"column:age"`
	Role        string    `gorm:"column:role"`
	ShopName    *string   `gorm:"column:shop_name"`
	ShopAddress *string   `gorm:"column:shop_address"`
	GSTIN       *string   `gorm:"column:gstin"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "user_profiles" }

func toDomainProfile(m profileModel) *domain.Profile {
	var phone, shopName, shopAddress, gstin string
	var age int
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.Age != nil {
		age = *m.Age
	}
	if m.ShopName != nil {
		shopName = *m.ShopName
	}
	if m.ShopAddress != nil {
		shopAddress = *m.ShopAddress
	}
	if m.GSTIN != nil {
		gstin = *m.GSTIN
	}

	return &domain.Profile{
		ID:          m.ID,
		UserID:      m.UserID,
		Email:       m.Email,
		Username:    m.Username,
		Phone:       phone,
		Age:         age,
		Role:        domain.Role(m.Role),
		ShopName:    shopName,
		ShopAddress: shopAddress,
		GSTIN:       gstin,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toProfileModel(p *domain.Profile) profileModel {
	var phone, shopName, shopAddress, gstin *string
	var age *int
	if p.Phone != "" {
		v := p.Phone
		phone = &v
	}
	if p.Age != 0 {
		v := p.Age
		age = &v
	}
	if p.ShopName != "" {
		v := p.ShopName
		shopName = &v
	}
	if p.ShopAddress != "" {
		v := p.ShopAddress
		shopAddress = &v
	}
	if p.GSTIN != "" {
		v := p.GSTIN
		gstin = &v
	}

	return profileModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Email:       p.Email,
		Username:    p.Username,
		Phone:       phone,
		Age:         age,
		Role:        string(p.Role),
		ShopName:    shopName,
		ShopAddress: shopAddress,
		GSTIN:       gstin,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var m profileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

// GetByUserIDs fetches all profiles matching the given user ids in one call.
// Used by the admin loan listing to resolve merchant names without a query
// per row.
func (r *ProfileRepository) GetByUserIDs(ctx context.Context, userIDs []int64) ([]domain.Profile, error) {
	if len(userIDs) == 0 {
		return []domain.Profile{}, nil
	}

	var models []profileModel
	tx := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	profiles := make([]domain.Profile, 0, len(models))
	for _, m := range models {
		profiles = append(profiles, *toDomainProfile(m))
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProfile(m)
	return nil
}

// CountByRole is used by the admin stats endpoint.
func (r *ProfileRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&profileModel{}).Where("role = ?", string(role)).Count(&n)
	return n, tx.Error
}

func (r *ProfileRepository) DB() *gorm.DB { return r.db }
