package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type LoanStatus string

const (
	LoanPending     LoanStatus = "pending"
	LoanApproved    LoanStatus = "approved"
	LoanRejected    LoanStatus = "rejected"
	LoanUnderReview LoanStatus = "under_review"
)

// Valid reports whether s is a known review status. under_review is a
// legitimate stored value but no supported flow transitions into it.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanPending, LoanApproved, LoanRejected, LoanUnderReview:
		return true
	}
	return false
}

// DocumentMap maps a document label (e.g. "Aadhar Image") to the URL of the
// uploaded file. Stored as a JSON column on loans.
type DocumentMap map[string]string

func (m DocumentMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *DocumentMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for DocumentMap")
	}
}

// Loan is a single application record. Created either by a borrower
// (UserID set, ReferredBy nil) or by a merchant on behalf of an applicant
// (ReferredBy set to the merchant's user id). Status starts as pending and
// is mutated by admins only.
type Loan struct {
	ID            int64       `gorm:"column:id;primaryKey" json:"id"`
	UserID        *int64      `gorm:"column:user_id" json:"user_id,omitempty"`
	FirstName     string      `gorm:"column:first_name" json:"first_name"`
	LastName      string      `gorm:"column:last_name" json:"last_name"`
	DOB           string      `gorm:"column:dob" json:"dob"`
	Phone         string      `gorm:"column:phone" json:"phone"`
	Address       string      `gorm:"column:address" json:"address"`
	Occupation    string      `gorm:"column:occupation" json:"occupation"`
	Age           int         `gorm:"column:age" json:"age"`
	MonthlyIncome float64     `gorm:"column:monthly_income" json:"monthly_income"`
	LoanAmount    float64     `gorm:"column:loan_amount" json:"loan_amount"`
	LoanPurpose   string      `gorm:"column:loan_purpose" json:"loan_purpose"`
	AadhaarNumber string      `gorm:"column:aadhaar_number" json:"aadhaar_number"`
	PANNumber     string      `gorm:"column:pan_number" json:"pan_number"`
	ReviewStatus  LoanStatus  `gorm:"column:review_status" json:"review_status"`
	ReferredBy    *int64      `gorm:"column:referred_by" json:"referred_by,omitempty"`
	Documents     DocumentMap `gorm:"column:documents;type:json" json:"documents,omitempty"`
	CreatedAt     time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
