package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"loanportal/internal/domain"
	"loanportal/internal/storage"

	"gorm.io/gorm"
)

type mockLoanRepo struct {
	loans      map[int64]*domain.Loan
	updateErr  error
	docUpdates int
}

func newMockLoanRepo() *mockLoanRepo { return &mockLoanRepo{loans: map[int64]*domain.Loan{}} }

func (m *mockLoanRepo) GetByID(_ context.Context, id int64) (*domain.Loan, error) {
	if l, ok := m.loans[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLoanRepo) UpdateDocuments(_ context.Context, id int64, docs domain.DocumentMap) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	l, ok := m.loans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.docUpdates++
	l.Documents = docs
	return nil
}

type mockStore struct {
	objects map[string][]byte
	failOn  int // fail the nth Put (1-based), 0 = never
	puts    int
	removed []string
}

func newMockStore() *mockStore { return &mockStore{objects: map[string][]byte{}} }

func (m *mockStore) Put(_ context.Context, objectPath string, r io.Reader, size int64) (string, error) {
	m.puts++
	if m.failOn != 0 && m.puts == m.failOn {
		return "", errors.New("disk full")
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
	return m.PublicURL(objectPath) + "?sig=test&expires=999", nil
}

func approvedLoan(id, owner int64) *domain.Loan {
	return &domain.Loan{ID: id, UserID: &owner, ReviewStatus: domain.LoanApproved}
}

func file(label, name, content string) File {
	return File{Label: label, Filename: name, Size: int64(len(content)), Reader: strings.NewReader(content)}
}

func TestUploadBatchMergesDocuments(t *testing.T) {
	repo := newMockLoanRepo()
	loan := approvedLoan(1, 7)
	loan.Documents = domain.DocumentMap{domain.DocAadharImage: "/static/documents/applications/7/old_aadhaar.jpg"}
	repo.loans[1] = loan
	store := newMockStore()
	svc := NewService(repo, store, time.Hour)

	docs, err := svc.UploadBatch(context.Background(), Actor{UserID: 7, Role: domain.RoleBorrower}, 1, []File{
		file(domain.DocBankStatement, "stmt.pdf", "pdfdata"),
		file(domain.DocSalarySlip, "slip.pdf", "slipdata"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("documents = %v", docs)
	}
	// Pre-existing entry survives the merge.
	if docs[domain.DocAadharImage] == "" {
		t.Fatal("existing document lost in merge")
	}
	if repo.docUpdates != 1 {
		t.Fatalf("document updates = %d, want exactly 1", repo.docUpdates)
	}
	for _, p := range []string{domain.DocBankStatement, domain.DocSalarySlip} {
		if !strings.HasPrefix(docs[p], "/static/documents/loans/1/") {
			t.Fatalf("label %q url = %q", p, docs[p])
		}
	}
}

// The batch is all-or-nothing: when one upload fails, nothing already
// stored survives and the map is never written.
func TestUploadBatchFailureMergesNothing(t *testing.T) {
	repo := newMockLoanRepo()
	repo.loans[1] = approvedLoan(1, 7)
	store := newMockStore()
	store.failOn = 2
	svc := NewService(repo, store, time.Hour)

	_, err := svc.UploadBatch(context.Background(), Actor{UserID: 7, Role: domain.RoleBorrower}, 1, []File{
		file(domain.DocBankStatement, "stmt.pdf", "pdfdata"),
		file(domain.DocSalarySlip, "slip.pdf", "slipdata"),
	})
	if err == nil {
		t.Fatal("expected upload failure")
	}
	if repo.docUpdates != 0 {
		t.Fatal("document map must not be written on failure")
	}
	if len(store.objects) != 0 {
		t.Fatalf("stored objects must be cleaned up, have %d", len(store.objects))
	}
}

func TestUploadBatchRequiresApprovedLoan(t *testing.T) {
	repo := newMockLoanRepo()
	owner := int64(7)
	repo.loans[1] = &domain.Loan{ID: 1, UserID: &owner, ReviewStatus: domain.LoanPending}
	svc := NewService(repo, newMockStore(), time.Hour)

	_, err := svc.UploadBatch(context.Background(), Actor{UserID: 7, Role: domain.RoleBorrower}, 1, []File{
		file(domain.DocBankStatement, "stmt.pdf", "x"),
	})
	if !errors.Is(err, ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
}

func TestUploadBatchAccessControl(t *testing.T) {
	repo := newMockLoanRepo()
	merchant := int64(42)
	repo.loans[1] = &domain.Loan{ID: 1, ReferredBy: &merchant, ReviewStatus: domain.LoanApproved}
	svc := NewService(repo, newMockStore(), time.Hour)

	batch := []File{file(domain.DocShopLicense, "license.pdf", "x")}

	// The referring merchant may upload.
	if _, err := svc.UploadBatch(context.Background(), Actor{UserID: 42, Role: domain.RoleMerchant}, 1, batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A different merchant may not.
	_, err := svc.UploadBatch(context.Background(), Actor{UserID: 9, Role: domain.RoleMerchant}, 1,
		[]File{file(domain.DocShopLicense, "license.pdf", "x")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Admins review documents but do not upload them.
	_, err = svc.UploadBatch(context.Background(), Actor{UserID: 1, Role: domain.RoleAdmin}, 1,
		[]File{file(domain.DocShopLicense, "license.pdf", "x")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
}

func TestUploadBatchRejectsUnknownLabel(t *testing.T) {
	repo := newMockLoanRepo()
	repo.loans[1] = approvedLoan(1, 7)
	store := newMockStore()
	svc := NewService(repo, store, time.Hour)

	_, err := svc.UploadBatch(context.Background(), Actor{UserID: 7, Role: domain.RoleBorrower}, 1, []File{
		file("Selfie", "selfie.jpg", "x"),
	})
	if !errors.Is(err, ErrInvalidLabel) {
		t.Fatalf("expected ErrInvalidLabel, got %v", err)
	}
	if store.puts != 0 {
		t.Fatal("labels are validated before anything is stored")
	}
}

func TestUploadBatchRejectsOversizedBeforeStoring(t *testing.T) {
	repo := newMockLoanRepo()
	repo.loans[1] = approvedLoan(1, 7)
	store := newMockStore()
	svc := NewService(repo, store, time.Hour)

	_, err := svc.UploadBatch(context.Background(), Actor{UserID: 7, Role: domain.RoleBorrower}, 1, []File{
		file(domain.DocBankStatement, "ok.pdf", "x"),
		{Label: domain.DocSalarySlip, Filename: "big.pdf", Size: maxFileSize + 1, Reader: strings.NewReader("x")},
	})
	if !errors.Is(err, storage.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if store.puts != 0 {
		t.Fatal("size checks run before any upload starts")
	}
}

func TestListSignsURLs(t *testing.T) {
	repo := newMockLoanRepo()
	loan := approvedLoan(1, 7)
	loan.Documents = domain.DocumentMap{
		domain.DocAadharImage:   "/static/documents/applications/7/a.jpg",
		domain.DocBankStatement: "/static/documents/loans/1/b.pdf",
	}
	repo.loans[1] = loan
	svc := NewService(repo, newMockStore(), time.Hour)

	entries, err := svc.List(context.Background(), Actor{UserID: 7, Role: domain.RoleBorrower}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}
	for _, e := range entries {
		if !strings.Contains(e.URL, "sig=") {
			t.Fatalf("entry %q is not signed: %q", e.Label, e.URL)
		}
	}
}

func TestListAdminReadsAnyLoan(t *testing.T) {
	repo := newMockLoanRepo()
	repo.loans[1] = approvedLoan(1, 7)
	svc := NewService(repo, newMockStore(), time.Hour)

	if _, err := svc.List(context.Background(), Actor{UserID: 999, Role: domain.RoleAdmin}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A stranger borrower cannot.
	_, err := svc.List(context.Background(), Actor{UserID: 999, Role: domain.RoleBorrower}, 1)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
