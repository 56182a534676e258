package notify

import (
	"context"
	"errors"
	"fmt"
)

// Sender is the outbound messaging boundary. Implementations bind their
// chat target at construction and classify their own failures as transient
// or permanent via DeliveryError.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// DeliveryError wraps a messaging failure with its retry classification.
// Transient errors (rate limiting, timeouts, 5xx) are worth retrying;
// permanent ones (invalid chat target, malformed content) are not.
type DeliveryError struct {
	Permanent bool
	Err       error
}

func (e *DeliveryError) Error() string {
	kind := "transient"
	if e.Permanent {
		kind = "permanent"
	}
	return fmt.Sprintf("%s delivery error: %v", kind, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Transient wraps err as a retryable delivery failure.
func Transient(err error) error {
	return &DeliveryError{Err: err}
}

// Permanent wraps err as a non-retryable delivery failure.
func Permanent(err error) error {
	return &DeliveryError{Permanent: true, Err: err}
}

// IsPermanent reports whether err is classified permanent. Unclassified
// errors count as transient: retrying a permanent failure wastes a few
// attempts, dropping a transient one loses a notification.
func IsPermanent(err error) bool {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Permanent
	}
	return false
}
