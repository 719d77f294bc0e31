package ports

import "context"

// LoginLimiter throttles repeated failed login attempts per email address.
type LoginLimiter interface {
	// Allow reports whether another attempt for this email may proceed.
	Allow(ctx context.Context, email string) (bool, error)
	// RecordFailure counts a failed attempt against the email.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, email string) error
}
