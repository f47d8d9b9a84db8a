package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

type mockLoanRepo struct {
	loans []domain.Loan
}

func (m *mockLoanRepo) ListAll(_ context.Context) ([]domain.Loan, error) {
	return m.loans, nil
}

func (m *mockLoanRepo) ListByStatus(_ context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range m.loans {
		if l.ReviewStatus == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLoanRepo) UpdateStatus(_ context.Context, id int64, status domain.LoanStatus) error {
	for i := range m.loans {
		if m.loans[i].ID == id {
			m.loans[i].ReviewStatus = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockProfileRepo struct {
	profiles []domain.Profile
	calls    int
}

func (m *mockProfileRepo) GetByUserIDs(_ context.Context, userIDs []int64) ([]domain.Profile, error) {
	m.calls++
	ids := map[int64]struct{}{}
	for _, id := range userIDs {
		ids[id] = struct{}{}
	}
	var out []domain.Profile
	for _, p := range m.profiles {
		if _, ok := ids[p.UserID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProfileRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, p := range m.profiles {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}

type mockProductRepo struct{ count int64 }

func (m *mockProductRepo) Count(_ context.Context) (int64, error) { return m.count, nil }

func ptr(v int64) *int64 { return &v }

func TestListLoansResolvesMerchantNames(t *testing.T) {
	loans := &mockLoanRepo{loans: []domain.Loan{
		{ID: 1, ReviewStatus: domain.LoanPending},                      // borrower-filed
		{ID: 2, ReviewStatus: domain.LoanPending, ReferredBy: ptr(10)}, // known merchant
		{ID: 3, ReviewStatus: domain.LoanPending, ReferredBy: ptr(10)}, // same merchant
		{ID: 4, ReviewStatus: domain.LoanPending, ReferredBy: ptr(99)}, // unknown referrer
	}}
	profiles := &mockProfileRepo{profiles: []domain.Profile{
		{UserID: 10, Username: "ram", ShopName: "Ram Traders", Role: domain.RoleMerchant},
	}}
	svc := NewService(loans, profiles, &mockProductRepo{})

	rows, err := svc.ListLoans(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].MerchantName != "Not Referred" {
		t.Fatalf("row 0 merchant = %q", rows[0].MerchantName)
	}
	if rows[1].MerchantName != "Ram Traders" || rows[2].MerchantName != "Ram Traders" {
		t.Fatalf("rows 1/2 merchant = %q/%q", rows[1].MerchantName, rows[2].MerchantName)
	}
	if rows[3].MerchantName != "N/A" {
		t.Fatalf("row 3 merchant = %q", rows[3].MerchantName)
	}
	// Name resolution must be one batch lookup, not one per loan.
	if profiles.calls != 1 {
		t.Fatalf("profile lookups = %d, want 1", profiles.calls)
	}
}

func TestSetStatusValidTransitions(t *testing.T) {
	loans := &mockLoanRepo{loans: []domain.Loan{{ID: 1, ReviewStatus: domain.LoanRejected}}}
	svc := NewService(loans, &mockProfileRepo{}, &mockProductRepo{})

	// There is no transition guard: a rejected loan can be flipped to
	// approved directly.
	if err := svc.SetStatus(context.Background(), 1, "approved"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loans.loans[0].ReviewStatus != domain.LoanApproved {
		t.Fatalf("status = %q", loans.loans[0].ReviewStatus)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	loans := &mockLoanRepo{loans: []domain.Loan{{ID: 1, ReviewStatus: domain.LoanPending}}}
	svc := NewService(loans, &mockProfileRepo{}, &mockProductRepo{})

	err := svc.SetStatus(context.Background(), 1, "disbursed")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if loans.loans[0].ReviewStatus != domain.LoanPending {
		t.Fatal("status must be untouched on invalid input")
	}
}

func TestSetStatusMissingLoan(t *testing.T) {
	svc := NewService(&mockLoanRepo{}, &mockProfileRepo{}, &mockProductRepo{})

	err := svc.SetStatus(context.Background(), 404, "approved")
	if !errors.Is(err, ErrLoanNotFound) {
		t.Fatalf("expected ErrLoanNotFound, got %v", err)
	}
}

func TestApprovedLoansFiltered(t *testing.T) {
	loans := &mockLoanRepo{loans: []domain.Loan{
		{ID: 1, ReviewStatus: domain.LoanApproved},
		{ID: 2, ReviewStatus: domain.LoanPending},
		{ID: 3, ReviewStatus: domain.LoanApproved},
	}}
	svc := NewService(loans, &mockProfileRepo{}, &mockProductRepo{})

	rows, err := svc.ApprovedLoans(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestStats(t *testing.T) {
	now := time.Now().UTC()
	old := now.AddDate(0, -1, 0)
	loans := &mockLoanRepo{loans: []domain.Loan{
		{ID: 1, ReviewStatus: domain.LoanApproved, LoanAmount: 100, CreatedAt: old},
		{ID: 2, ReviewStatus: domain.LoanPending, LoanAmount: 50, CreatedAt: now},
		{ID: 3, ReviewStatus: domain.LoanRejected, LoanAmount: 25, CreatedAt: old},
		{ID: 4, ReviewStatus: domain.LoanUnderReview, LoanAmount: 10, CreatedAt: old},
	}}
	profiles := &mockProfileRepo{profiles: []domain.Profile{
		{UserID: 1, Role: domain.RoleBorrower},
		{UserID: 2, Role: domain.RoleBorrower},
		{UserID: 3, Role: domain.RoleMerchant},
	}}
	svc := NewService(loans, profiles, &mockProductRepo{count: 5})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLoans != 4 || stats.PendingLoans != 1 || stats.ApprovedLoans != 1 || stats.RejectedLoans != 1 {
		t.Fatalf("loan counts wrong: %+v", stats)
	}
	if stats.TodayLoans != 1 {
		t.Fatalf("today loans = %d, want 1", stats.TodayLoans)
	}
	if stats.TotalAmount != 185 || stats.ApprovedAmount != 100 {
		t.Fatalf("amounts wrong: %+v", stats)
	}
	if stats.Borrowers != 2 || stats.Merchants != 1 || stats.Products != 5 {
		t.Fatalf("entity counts wrong: %+v", stats)
	}
}
