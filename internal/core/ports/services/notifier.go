package services

import "context"

// Notifier is the outbound notification collaborator. Delivery is attempted
// once; the core never retries on failure.
type Notifier interface {
	// Send delivers a rendered notice to the recipient address.
	Send(ctx context.Context, to string, subject string, body string) error
}
