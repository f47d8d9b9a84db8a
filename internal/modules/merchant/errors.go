package merchant

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProfileNotFound = errors.New("profile not found")
)
