package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"loanportal/internal/domain"
	"loanportal/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 5MB per file.
const maxFileSize = 5 << 20

// Actor identifies the caller for access checks.
type Actor struct {
	UserID int64
	Role   domain.Role
}

// File is one labeled upload in a batch.
type File struct {
	Label    string
	Filename string
	Size     int64
	Reader   io.Reader
}

// Entry is one row of the document listing.
type Entry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Service struct {
	loans     LoanRepositoryInterface
	store     storage.Store
	signedTTL time.Duration
}

func NewService(loans LoanRepositoryInterface, store storage.Store, signedTTL time.Duration) *Service {
	if signedTTL <= 0 {
		signedTTL = time.Hour
	}
	return &Service{loans: loans, store: store, signedTTL: signedTTL}
}

// UploadBatch stores every file in the batch and merges the resulting
// URLs into the loan's document map in a single update. The batch is
// all-or-nothing: the first failure removes everything stored so far
// and the map is not touched. Uploads are only open once the loan is
// approved, and only to the borrower who owns it or the merchant who
// referred it.
func (s *Service) UploadBatch(ctx context.Context, actor Actor, loanID int64, files []File) (domain.DocumentMap, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if loan.ReviewStatus != domain.LoanApproved {
		return nil, ErrNotApproved
	}
	if !canTouch(actor, loan) {
		return nil, ErrForbidden
	}

	for _, f := range files {
		if !domain.ValidDocumentLabel(f.Label) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, f.Label)
		}
		if f.Size == 0 {
			return nil, storage.ErrEmptyFile
		}
		if f.Size > maxFileSize {
			return nil, storage.ErrFileTooLarge
		}
	}

	merged := domain.DocumentMap{}
	for k, v := range loan.Documents {
		merged[k] = v
	}

	var uploaded []string
	cleanup := func() {
		for _, p := range uploaded {
			if err := s.store.Remove(ctx, p); err != nil {
				log.Printf("document batch cleanup failed path=%s err=%v", p, err)
			}
		}
	}

	for _, f := range files {
		objectPath := loanObjectPath(loanID, f.Filename)
		url, err := s.store.Put(ctx, objectPath, f.Reader, f.Size)
		if err != nil {
			cleanup()
			return nil, err
		}
		uploaded = append(uploaded, objectPath)
		merged[f.Label] = url
	}

	if err := s.loans.UpdateDocuments(ctx, loanID, merged); err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return merged, nil
}

// List returns the loan's documents with short-lived signed URLs.
// Admins can read any loan; others only their own.
func (s *Service) List(ctx context.Context, actor Actor, loanID int64) ([]Entry, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !canTouch(actor, loan) {
		return nil, ErrForbidden
	}

	base := s.store.PublicURL("")
	entries := make([]Entry, 0, len(loan.Documents))
	for _, label := range domain.DocumentLabels() {
		url, ok := loan.Documents[label]
		if !ok {
			continue
		}
		objectPath := strings.TrimPrefix(url, base)
		signed, err := s.store.SignedURL(objectPath, s.signedTTL)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Label: label, URL: signed})
	}
	return entries, nil
}

func canTouch(actor Actor, loan *domain.Loan) bool {
	switch actor.Role {
	case domain.RoleBorrower:
		return loan.UserID != nil && *loan.UserID == actor.UserID
	case domain.RoleMerchant:
		return loan.ReferredBy != nil && *loan.ReferredBy == actor.UserID
	}
	return false
}

// Object names carry a random prefix so re-uploads of the same filename
// never overwrite each other.
func loanObjectPath(loanID int64, filename string) string {
	return path.Join(
		"loans",
		fmt.Sprintf("%d", loanID),
		uuid.NewString()+"_"+path.Base(filename),
	)
}
