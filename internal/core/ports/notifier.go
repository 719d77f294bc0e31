package ports

import "context"

// Notifier delivers account notifications to an external channel. Callers
// treat delivery as fire-and-forget: a failed send is logged by the
// implementation and never propagated to the request that triggered it.
type Notifier interface {
	AccountCreated(ctx context.Context, email string) error
}
