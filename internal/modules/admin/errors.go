package admin

import "errors"

var (
	ErrLoanNotFound  = errors.New("loan not found")
	ErrInvalidStatus = errors.New("invalid review status")
)
