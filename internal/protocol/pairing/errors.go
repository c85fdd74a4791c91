package pairing

import (
	"errors"
	"fmt"
)

// Terminal outcomes surfaced to the caller. Each implies a different next
// action, so they stay distinct: a rejection can be retried immediately, a
// timeout suggests another relay, a cancellation needs nothing.
var (
	// ErrGeneration means key material could not be produced. Fatal, never
	// retried silently.
	ErrGeneration = errors.New("pairing: key generation failed")

	// ErrTransport means the relay subscription could not be opened or died
	// mid-flight.
	ErrTransport = errors.New("pairing: relay transport failed")

	// ErrTimeout means no qualifying response arrived before the deadline.
	ErrTimeout = errors.New("pairing: no signer responded in time")

	// ErrAborted means the caller cancelled the attempt.
	ErrAborted = errors.New("pairing: cancelled")
)

// ProtocolError carries the counterparty's own rejection message, verbatim.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "pairing: signer rejected the request: " + e.Reason
}

// Per-message failures recovered inside the listen loop. They never surface
// and never end an otherwise-healthy wait.
var (
	errDecryptionExhausted = errors.New("message failed both envelope schemes")
	errInconclusive        = errors.New("message is not a pairing response")
)

func skippable(err error) bool {
	return errors.Is(err, errDecryptionExhausted) || errors.Is(err, errInconclusive)
}

// wrapf keeps the sentinel visible through errors.Is while adding context.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
