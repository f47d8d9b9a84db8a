package borrower

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"

	"loanportal/internal/domain"
	"loanportal/internal/storage"

	"github.com/google/uuid"
)

// 5MB per file, same limit as the document upload endpoints.
const maxFileSize = 5 << 20

// ApplyFile is one identity image attached to an application.
type ApplyFile struct {
	Label    string
	Filename string
	Size     int64
	Reader   io.Reader
}

type Service struct {
	loans    LoanRepositoryInterface
	products ProductRepositoryInterface
	store    storage.Store
}

func NewService(loans LoanRepositoryInterface, products ProductRepositoryInterface, store storage.Store) *Service {
	return &Service{loans: loans, products: products, store: store}
}

// Apply files a new application for the calling borrower. Identity
// images are uploaded first and their URLs folded into the documents
// map, so the loan row lands complete or not at all. Status always
// starts as pending and the loan carries no referrer.
func (s *Service) Apply(ctx context.Context, userID int64, req ApplyRequest, files []ApplyFile) (*domain.Loan, error) {
	var docs domain.DocumentMap
	var uploaded []string

	cleanup := func() {
		for _, p := range uploaded {
			if err := s.store.Remove(ctx, p); err != nil {
				log.Printf("apply cleanup failed path=%s err=%v", p, err)
			}
		}
	}

	for _, f := range files {
		if f.Size == 0 {
			cleanup()
			return nil, storage.ErrEmptyFile
		}
		if f.Size > maxFileSize {
			cleanup()
			return nil, storage.ErrFileTooLarge
		}
		objectPath := applicationObjectPath(userID, f.Filename)
		url, err := s.store.Put(ctx, objectPath, f.Reader, f.Size)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("%w: %s", ErrUploadFailed, f.Label)
		}
		uploaded = append(uploaded, objectPath)
		if docs == nil {
			docs = domain.DocumentMap{}
		}
		docs[f.Label] = url
	}

	loan := &domain.Loan{
		UserID:        &userID,
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
		Documents:     docs,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		cleanup()
		return nil, err
	}
	return loan, nil
}

// MyLoans returns the caller's applications, newest first.
func (s *Service) MyLoans(ctx context.Context, userID int64) ([]domain.Loan, error) {
	return s.loans.ListByUser(ctx, userID)
}

// Products lists the full catalog; borrowers see every merchant's offers.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

// Object names carry a random prefix so re-uploads of the same filename
// never overwrite each other.
func applicationObjectPath(userID int64, filename string) string {
	return path.Join(
		"applications",
		fmt.Sprintf("%d", userID),
		uuid.NewString()+"_"+path.Base(filename),
	)
}
