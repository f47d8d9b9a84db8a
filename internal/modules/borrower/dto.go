package borrower

// ApplyRequest carries the form fields of a borrower application. The
// two identity images arrive as separate multipart file parts.
type ApplyRequest struct {
	FirstName     string  `form:"first_name" binding:"required"`
	LastName      string  `form:"last_name" binding:"required"`
	DOB           string  `form:"dob" binding:"required"`
	Phone         string  `form:"phone" binding:"required"`
	Address       string  `form:"address" binding:"required"`
	Occupation    string  `form:"occupation"`
	Age           int     `form:"age" binding:"required,gt=0"`
	MonthlyIncome float64 `form:"monthly_income" binding:"required,gt=0"`
	LoanAmount    float64 `form:"loan_amount" binding:"required,gt=0"`
	LoanPurpose   string  `form:"loan_purpose"`
	AadhaarNumber string  `form:"aadhaar_number" binding:"required"`
	PANNumber     string  `form:"pan_number" binding:"required"`
}
