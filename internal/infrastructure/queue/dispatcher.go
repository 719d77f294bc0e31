package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/tenantscore/rental-admin/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// NotificationDispatcher decouples notification delivery from the request
// path: requests enqueue and return immediately, a fixed set of workers
// drains the channels. Notifications are sharded by recipient so mails to
// one address keep their order. It implements ports.Notifier and wraps the
// real sender; send failures are logged here and never reach the caller.
type NotificationDispatcher struct {
	workers []chan string
	sender  ports.Notifier
	log     zerolog.Logger
}

// NewNotificationDispatcher creates a dispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewNotificationDispatcher(numWorkers int, sender ports.Notifier, log zerolog.Logger) *NotificationDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &NotificationDispatcher{
		workers: make([]chan string, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// AccountCreated enqueues an account-created notification and returns
// without waiting for delivery. The call blocks only when the responsible
// worker's buffer is full.
func (d *NotificationDispatcher) AccountCreated(_ context.Context, email string) error {
	d.workers[d.shardIndex(email)] <- email
	return nil
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *NotificationDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *NotificationDispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case email, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.AccountCreated(ctx, email); err != nil {
				d.log.Error().Err(err).
					Str("email", email).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
