package documents

import "errors"

var (
	ErrLoanNotFound = errors.New("loan not found")
	ErrNotApproved  = errors.New("loan is not approved")
	ErrForbidden    = errors.New("not allowed to touch this loan's documents")
	ErrInvalidLabel = errors.New("unknown document label")
	ErrNoFiles      = errors.New("no files in request")
)
