package admin

import (
	"context"
	"errors"
	"time"

	"loanportal/internal/domain"

	"gorm.io/gorm"
)

const (
	merchantNotReferred = "Not Referred"
	merchantUnknown     = "N/A"
)

type Service struct {
	loans    LoanRepositoryInterface
	profiles ProfileRepositoryInterface
	products ProductRepositoryInterface
}

func NewService(loans LoanRepositoryInterface, profiles ProfileRepositoryInterface, products ProductRepositoryInterface) *Service {
	return &Service{loans: loans, profiles: profiles, products: products}
}

// ListLoans returns every loan with the referring merchant's name
// resolved in one batch query rather than one lookup per row.
func (s *Service) ListLoans(ctx context.Context) ([]LoanRow, error) {
	loans, err := s.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, loans)
}

// ApprovedLoans is the disbursement view: approved only.
func (s *Service) ApprovedLoans(ctx context.Context) ([]LoanRow, error) {
	loans, err := s.loans.ListByStatus(ctx, domain.LoanApproved)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, loans)
}

// SetStatus overwrites a loan's review status. Any valid status can be
// written over any other; there is no transition guard and concurrent
// admins are last-write-wins.
func (s *Service) SetStatus(ctx context.Context, loanID int64, status string) error {
	st := domain.LoanStatus(status)
	if !st.Valid() {
		return ErrInvalidStatus
	}
	if err := s.loans.UpdateStatus(ctx, loanID, st); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoanNotFound
		}
		return err
	}
	return nil
}

// Analytics folds the full loan set in memory; volumes are small enough
// that no SQL aggregation is worth the second query shape.
func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	loans, err := s.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		ByPurpose: purposeBreakdown(loans),
		ByMonth:   monthlyTrend(loans),
	}, nil
}

func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	loans, err := s.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	stats := &PlatformStats{TotalLoans: int64(len(loans))}
	for _, l := range loans {
		stats.TotalAmount += l.LoanAmount
		if !l.CreatedAt.UTC().Before(today) {
			stats.TodayLoans++
		}
		switch l.ReviewStatus {
		case domain.LoanPending:
			stats.PendingLoans++
		case domain.LoanApproved:
			stats.ApprovedLoans++
			stats.ApprovedAmount += l.LoanAmount
		case domain.LoanRejected:
			stats.RejectedLoans++
		}
	}

	if stats.Borrowers, err = s.profiles.CountByRole(ctx, domain.RoleBorrower); err != nil {
		return nil, err
	}
	if stats.Merchants, err = s.profiles.CountByRole(ctx, domain.RoleMerchant); err != nil {
		return nil, err
	}
	if stats.Products, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) decorate(ctx context.Context, loans []domain.Loan) ([]LoanRow, error) {
	idSet := map[int64]struct{}{}
	for _, l := range loans {
		if l.ReferredBy != nil {
			idSet[*l.ReferredBy] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names := map[int64]string{}
	if len(ids) > 0 {
		profiles, err := s.profiles.GetByUserIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			name := p.ShopName
			if name == "" {
				name = p.Username
			}
			names[p.UserID] = name
		}
	}

	rows := make([]LoanRow, 0, len(loans))
	for _, l := range loans {
		row := LoanRow{Loan: l, MerchantName: merchantNotReferred}
		if l.ReferredBy != nil {
			if name, ok := names[*l.ReferredBy]; ok && name != "" {
				row.MerchantName = name
			} else {
				// Referrer id with no resolvable profile.
				row.MerchantName = merchantUnknown
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
