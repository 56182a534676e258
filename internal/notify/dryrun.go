package notify

import (
	"context"
	"fmt"
	"io"
)

// DryRunSender prints messages instead of delivering them. Used by the
// send-test command and for running the tracker without credentials.
type DryRunSender struct {
	out io.Writer
}

// NewDryRunSender creates a sender writing to out.
func NewDryRunSender(out io.Writer) *DryRunSender {
	return &DryRunSender{out: out}
}

// Send prints the message that would have been delivered.
func (s *DryRunSender) Send(_ context.Context, text string) error {
	fmt.Fprintf(s.out, "--- Mensaje ---\n%s\n(Longitud: %d caracteres)\n\n", text, len(text))
	return nil
}
