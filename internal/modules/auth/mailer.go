package auth

import (
	"context"
	"log"
)

// DevConsoleMailer writes the reset dispatch to the process log instead
// of sending real mail. Used outside production.
type DevConsoleMailer struct{}

func (DevConsoleMailer) SendPasswordReset(_ context.Context, email, redirectURL string) error {
	log.Printf("[mail] password reset requested email=%s redirect=%s", email, redirectURL)
	return nil
}
