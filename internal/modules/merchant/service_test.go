package merchant

import (
	"context"
	"errors"
	"testing"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type mockLoanRepo struct {
	loans []domain.Loan
}

func (m *mockLoanRepo) Create(_ context.Context, l *domain.Loan) error {
	l.ID = int64(len(m.loans) + 1)
	m.loans = append(m.loans, *l)
	return nil
}

func (m *mockLoanRepo) ListByReferrer(_ context.Context, merchantUserID int64) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range m.loans {
		if l.ReferredBy != nil && *l.ReferredBy == merchantUserID {
			out = append(out, l)
		}
	}
	return out, nil
}

type mockProductRepo struct {
	products []domain.Product
	nextID   int64
}

func (m *mockProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.nextID++
	p.ProductID = m.nextID
	m.products = append(m.products, *p)
	return nil
}

func (m *mockProductRepo) ListByOwner(_ context.Context, userID int64) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) DeleteByIDAndOwner(_ context.Context, productID, userID int64) error {
	for i, p := range m.products {
		if p.ProductID == productID && p.UserID == userID {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockProfileRepo struct {
	byUserID map[int64]*domain.Profile
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	if p, ok := m.byUserID[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	cp := *profile
	m.byUserID[profile.UserID] = &cp
	return nil
}

func newTestService() (*Service, *mockLoanRepo, *mockProductRepo, *mockProfileRepo) {
	loans := &mockLoanRepo{}
	products := &mockProductRepo{}
	profiles := &mockProfileRepo{byUserID: map[int64]*domain.Profile{}}
	return NewService(loans, products, profiles), loans, products, profiles
}

func referRequest() ReferRequest {
	return ReferRequest{
		FirstName:     "Sita",
		LastName:      "Devi",
		DOB:           "1988-01-20",
		Phone:         "9123456780",
		Address:       "4 Market Street",
		Age:           37,
		MonthlyIncome: 30000,
		LoanAmount:    80000,
		LoanPurpose:   "Business Expansion",
		AadhaarNumber: "432143214321",
		PANNumber:     "FGHIJ5678K",
	}
}

func TestReferLoanStampsReferrerFromSession(t *testing.T) {
	svc, loans, _, _ := newTestService()

	loan, err := svc.ReferLoan(context.Background(), 42, referRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.ReferredBy == nil || *loan.ReferredBy != 42 {
		t.Fatalf("referred_by = %v, want 42", loan.ReferredBy)
	}
	if loan.UserID != nil {
		t.Fatal("referred loan must not carry a borrower account")
	}
	if loan.ReviewStatus != domain.LoanPending {
		t.Fatalf("status = %q, want pending", loan.ReviewStatus)
	}
	if len(loans.loans) != 1 {
		t.Fatalf("expected 1 loan, got %d", len(loans.loans))
	}
}

func TestReferralsPartitioned(t *testing.T) {
	svc, loans, _, _ := newTestService()

	merchant := int64(42)
	for _, status := range []domain.LoanStatus{
		domain.LoanPending, domain.LoanApproved, domain.LoanRejected, domain.LoanUnderReview,
	} {
		loans.loans = append(loans.loans, domain.Loan{
			ID: int64(len(loans.loans) + 1), ReferredBy: &merchant, ReviewStatus: status,
		})
	}
	other := int64(99)
	loans.loans = append(loans.loans, domain.Loan{ID: 100, ReferredBy: &other, ReviewStatus: domain.LoanApproved})

	result, err := svc.Referrals(context.Background(), merchant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Approved) != 1 {
		t.Fatalf("approved = %d, want 1", len(result.Approved))
	}
	// Rejected and under_review sit with pending on the review side.
	if len(result.InReview) != 3 {
		t.Fatalf("in_review = %d, want 3", len(result.InReview))
	}
}

func TestReferralsEmptySlicesNotNil(t *testing.T) {
	svc, _, _, _ := newTestService()

	result, err := svc.Referrals(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InReview == nil || result.Approved == nil {
		t.Fatal("partitions must marshal as [] rather than null")
	}
}

func TestDeleteProductOwnershipScoped(t *testing.T) {
	svc, _, products, _ := newTestService()

	p, err := svc.CreateProduct(context.Background(), 42, CreateProductRequest{Name: "Gold Loan", Price: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Another merchant cannot delete it.
	if err := svc.DeleteProduct(context.Background(), 7, p.ProductID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(products.products) != 1 {
		t.Fatal("product should still exist")
	}

	// The owner can.
	if err := svc.DeleteProduct(context.Background(), 42, p.ProductID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products.products) != 0 {
		t.Fatal("product should be gone")
	}
}

func TestUpdateShopPartial(t *testing.T) {
	svc, _, _, profiles := newTestService()
	profiles.byUserID[42] = &domain.Profile{
		UserID: 42, Role: domain.RoleMerchant,
		ShopName: "Old Shop", ShopAddress: "Old Address", GSTIN: "22AAAAA0000A1Z5",
	}

	updated, err := svc.UpdateShop(context.Background(), 42, UpdateShopRequest{ShopName: "New Shop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ShopName != "New Shop" {
		t.Fatalf("shop_name = %q", updated.ShopName)
	}
	if updated.ShopAddress != "Old Address" || updated.GSTIN != "22AAAAA0000A1Z5" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateShopMissingProfile(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateShop(context.Background(), 1, UpdateShopRequest{ShopName: "X"})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
