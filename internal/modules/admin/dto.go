package admin

import "loanportal/internal/domain"

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LoanRow is a loan decorated with the resolved merchant display name.
// "Not Referred" for borrower-filed loans; "N/A" when the referrer's
// profile no longer resolves.
type LoanRow struct {
	domain.Loan
	MerchantName string `json:"merchant_name"`
}

type PlatformStats struct {
	TotalLoans     int64   `json:"total_loans"`
	PendingLoans   int64   `json:"pending_loans"`
	ApprovedLoans  int64   `json:"approved_loans"`
	RejectedLoans  int64   `json:"rejected_loans"`
	TodayLoans     int64   `json:"today_loans"`
	TotalAmount    float64 `json:"total_amount"`
	ApprovedAmount float64 `json:"approved_amount"`
	Borrowers      int64   `json:"borrowers"`
	Merchants      int64   `json:"merchants"`
	Products       int64   `json:"products"`
}

type PurposeCount struct {
	Purpose string `json:"purpose"`
	Count   int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type Analytics struct {
	ByPurpose []PurposeCount `json:"by_purpose"`
	ByMonth   []MonthCount   `json:"by_month"`
}
