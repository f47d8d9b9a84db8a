package borrower

import "errors"

var (
	ErrUploadFailed = errors.New("document upload failed")
)
