package interfaces

import (
	"context"

	domaintypes "nestkeeper/internal/domain/types"
)

// PairingAttempt is one in-flight pairing exchange. Offer is available as
// soon as the attempt exists; Await drives the exchange to a terminal state;
// Cancel is idempotent and safe to call at any time, including after a
// terminal state has already fired.
type PairingAttempt interface {
	Offer() domaintypes.ConnectionOffer
	OfferURI() string
	Status() domaintypes.AttemptStatus
	Await(ctx context.Context) (domaintypes.PairingResult, error)
	Cancel()
}

// PairingService owns at most one active attempt and the stored credential.
type PairingService interface {
	Begin(ctx context.Context) (PairingAttempt, error)
	Await(ctx context.Context, attempt PairingAttempt, passphrase string) (domaintypes.PairingResult, error)
	Cancel()
}
