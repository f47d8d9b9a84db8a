package merchant

import (
	"context"
	"errors"
	"strings"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	loans    LoanRepositoryInterface
	products ProductRepositoryInterface
	profiles ProfileRepositoryInterface
}

func NewService(loans LoanRepositoryInterface, products ProductRepositoryInterface, profiles ProfileRepositoryInterface) *Service {
	return &Service{loans: loans, products: products, profiles: profiles}
}

// ReferLoan files an application on behalf of a walk-in applicant.
// ReferredBy always comes from the session, never from the payload, and
// the loan has no UserID because the applicant holds no account.
func (s *Service) ReferLoan(ctx context.Context, merchantUserID int64, req ReferRequest) (*domain.Loan, error) {
	loan := &domain.Loan{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DOB:           req.DOB,
		Phone:         req.Phone,
		Address:       req.Address,
		Occupation:    req.Occupation,
		Age:           req.Age,
		MonthlyIncome: req.MonthlyIncome,
		LoanAmount:    req.LoanAmount,
		LoanPurpose:   req.LoanPurpose,
		AadhaarNumber: req.AadhaarNumber,
		PANNumber:     req.PANNumber,
		ReviewStatus:  domain.LoanPending,
		ReferredBy:    &merchantUserID,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Referrals returns the caller's referred loans partitioned for the
// dashboard: approved on one side, everything else still "in review".
func (s *Service) Referrals(ctx context.Context, merchantUserID int64) (*ReferralsResponse, error) {
	loans, err := s.loans.ListByReferrer(ctx, merchantUserID)
	if err != nil {
		return nil, err
	}

	out := &ReferralsResponse{
		InReview: []domain.Loan{},
		Approved: []domain.Loan{},
	}
	for _, l := range loans {
		if l.ReviewStatus == domain.LoanApproved {
			out.Approved = append(out.Approved, l)
		} else {
			out.InReview = append(out.InReview, l)
		}
	}
	return out, nil
}

func (s *Service) CreateProduct(ctx context.Context, merchantUserID int64, req CreateProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		UserID:      merchantUserID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) MyProducts(ctx context.Context, merchantUserID int64) ([]domain.Product, error) {
	return s.products.ListByOwner(ctx, merchantUserID)
}

// DeleteProduct removes exactly one product and only when the caller
// owns it; another merchant's product id answers not-found.
func (s *Service) DeleteProduct(ctx context.Context, merchantUserID, productID int64) error {
	if err := s.products.DeleteByIDAndOwner(ctx, productID, merchantUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// UpdateShop applies shop details to the merchant's profile. Empty
// fields are left untouched; concurrent edits are last-write-wins.
func (s *Service) UpdateShop(ctx context.Context, merchantUserID int64, req UpdateShopRequest) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, merchantUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if req.ShopName != "" {
		profile.ShopName = strings.TrimSpace(req.ShopName)
	}
	if req.ShopAddress != "" {
		profile.ShopAddress = strings.TrimSpace(req.ShopAddress)
	}
	if req.GSTIN != "" {
		profile.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
