package merchant

import "loanportal/internal/domain"

// ReferRequest is the application a merchant files on behalf of a
// walk-in applicant. The applicant has no account; the only link back
// is the merchant's own id on the loan.
type ReferRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	DOB           string  `json:"dob" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Occupation    string  `json:"occupation"`
	Age           int     `json:"age" binding:"required,gt=0"`
	MonthlyIncome float64 `json:"monthly_income" binding:"required,gt=0"`
	LoanAmount    float64 `json:"loan_amount" binding:"required,gt=0"`
	LoanPurpose   string  `json:"loan_purpose"`
	AadhaarNumber string  `json:"aadhaar_number" binding:"required"`
	PANNumber     string  `json:"pan_number" binding:"required"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type UpdateShopRequest struct {
	ShopName    string `json:"shop_name"`
	ShopAddress string `json:"shop_address"`
	GSTIN       string `json:"gstin"`
}

// ReferralsResponse splits a merchant's referrals the way the dashboard
// shows them: everything still in review on one side, approved on the
// other. Rejected loans stay in the review bucket.
type ReferralsResponse struct {
	InReview []domain.Loan `json:"in_review"`
	Approved []domain.Loan `json:"approved"`
}
