package borrower

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"loanportal/internal/domain"
	"loanportal/internal/storage"
)

type mockLoanRepo struct {
	loans     []domain.Loan
	createErr error
}

func (m *mockLoanRepo) Create(_ context.Context, l *domain.Loan) error {
	if m.createErr != nil {
		return m.createErr
	}
	l.ID = int64(len(m.loans) + 1)
	m.loans = append(m.loans, *l)
	return nil
}

func (m *mockLoanRepo) ListByUser(_ context.Context, userID int64) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range m.loans {
		if l.UserID != nil && *l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

type mockProductRepo struct {
	products []domain.Product
}

func (m *mockProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	return m.products, nil
}

type mockStore struct {
	objects map[string][]byte
	putErr  error
	removed []string
}

func newMockStore() *mockStore { return &mockStore{objects: map[string][]byte{}} }

func (m *mockStore) Put(_ context.Context, objectPath string, r io.Reader, size int64) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, _ := io.ReadAll(r)
	m.objects[objectPath] = data
	return m.PublicURL(objectPath), nil
}

func (m *mockStore) List(_ context.Context, prefix string) ([]storage.Object, error) {
	var out []storage.Object
	for p, data := range m.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, storage.Object{Name: p, Path: p, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (m *mockStore) Remove(_ context.Context, objectPath string) error {
	m.removed = append(m.removed, objectPath)
	delete(m.objects, objectPath)
	return nil
}

func (m *mockStore) PublicURL(objectPath string) string { return "/static/documents/" + objectPath }

func (m *mockStore) SignedURL(objectPath string, _ time.Duration) (string, error) {
	return m.PublicURL(objectPath) + "?sig=test", nil
}

func validRequest() ApplyRequest {
	return ApplyRequest{
		FirstName:     "Ravi",
		LastName:      "Kumar",
		DOB:           "1990-04-12",
		Phone:         "9876543210",
		Address:       "12 MG Road",
		Occupation:    "salaried",
		Age:           35,
		MonthlyIncome: 45000,
		LoanAmount:    200000,
		LoanPurpose:   "Home Renovation",
		AadhaarNumber: "123412341234",
		PANNumber:     "ABCDE1234F",
	}
}

func TestApplyWithoutFiles(t *testing.T) {
	repo := &mockLoanRepo{}
	svc := NewService(repo, &mockProductRepo{}, newMockStore())

	loan, err := svc.Apply(context.Background(), 7, validRequest(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loan.ReviewStatus != domain.LoanPending {
		t.Fatalf("status = %q, want pending", loan.ReviewStatus)
	}
	if loan.UserID == nil || *loan.UserID != 7 {
		t.Fatalf("user_id = %v, want 7", loan.UserID)
	}
	if loan.ReferredBy != nil {
		t.Fatal("borrower application must carry no referrer")
	}
	if loan.Documents != nil {
		t.Fatalf("documents should be empty, got %v", loan.Documents)
	}
}

func TestApplyFoldsFilesIntoDocuments(t *testing.T) {
	repo := &mockLoanRepo{}
	store := newMockStore()
	svc := NewService(repo, &mockProductRepo{}, store)

	files := []ApplyFile{
		{Label: domain.DocAadharImage, Filename: "aadhaar.jpg", Size: 4, Reader: strings.NewReader("abcd")},
		{Label: domain.DocPANCard, Filename: "pan.jpg", Size: 4, Reader: strings.NewReader("efgh")},
	}
	loan, err := svc.Apply(context.Background(), 7, validRequest(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loan.Documents) != 2 {
		t.Fatalf("documents = %v", loan.Documents)
	}
	for _, label := range []string{domain.DocAadharImage, domain.DocPANCard} {
		url, ok := loan.Documents[label]
		if !ok || !strings.HasPrefix(url, "/static/documents/applications/7/") {
			t.Fatalf("label %q url = %q", label, url)
		}
	}
	if len(store.objects) != 2 {
		t.Fatalf("expected 2 stored objects, got %d", len(store.objects))
	}
}

func TestApplyRejectsOversizedFile(t *testing.T) {
	repo := &mockLoanRepo{}
	svc := NewService(repo, &mockProductRepo{}, newMockStore())

	files := []ApplyFile{{
		Label:    domain.DocAadharImage,
		Filename: "big.jpg",
		Size:     maxFileSize + 1,
		Reader:   strings.NewReader("x"),
	}}
	_, err := svc.Apply(context.Background(), 7, validRequest(), files)
	if !errors.Is(err, storage.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if len(repo.loans) != 0 {
		t.Fatal("no loan row should be created")
	}
}

// When the insert fails after files were stored, the uploads are removed
// so storage holds no objects for a loan that never landed.
func TestApplyCleansUpOnInsertFailure(t *testing.T) {
	repo := &mockLoanRepo{createErr: errors.New("db down")}
	store := newMockStore()
	svc := NewService(repo, &mockProductRepo{}, store)

	files := []ApplyFile{
		{Label: domain.DocAadharImage, Filename: "aadhaar.jpg", Size: 4, Reader: strings.NewReader("abcd")},
	}
	_, err := svc.Apply(context.Background(), 7, validRequest(), files)
	if err == nil {
		t.Fatal("expected insert error")
	}
	if len(store.objects) != 0 {
		t.Fatalf("uploads should be cleaned up, still have %d", len(store.objects))
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected 1 removal, got %d", len(store.removed))
	}
}

func TestMyLoansScopedToCaller(t *testing.T) {
	repo := &mockLoanRepo{}
	svc := NewService(repo, &mockProductRepo{}, newMockStore())

	if _, err := svc.Apply(context.Background(), 1, validRequest(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Apply(context.Background(), 2, validRequest(), nil); err != nil {
		t.Fatal(err)
	}

	loans, err := svc.MyLoans(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loans) != 1 {
		t.Fatalf("expected 1 loan, got %d", len(loans))
	}
}
