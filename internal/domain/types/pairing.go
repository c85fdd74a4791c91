package types

// EphemeralIdentity is the keypair generated for exactly one pairing attempt.
// It is owned by that attempt and wiped when the attempt reaches a terminal
// state.
type EphemeralIdentity struct {
	Priv X25519Private
	Pub  X25519Public
}

// ConnectionOffer is everything a remote signer needs to initiate pairing,
// immutable once built.
type ConnectionOffer struct {
	PublicKey   X25519Public
	RelayURL    string
	Secret      string
	AppName     string
	AppURL      string
	Permissions []Permission
}

// AttemptStatus tracks a pairing attempt through its lifecycle. Transitions
// are strictly forward; regeneration starts a brand-new attempt instead of
// rewinding an old one.
type AttemptStatus int32

const (
	StatusIdle AttemptStatus = iota
	StatusGenerating
	StatusOffering
	StatusListening
	StatusDecrypting
	StatusValidating
	StatusConnected
	StatusFailed
	StatusTimedOut
	StatusAborted
)

// String returns a short human-readable status name.
func (s AttemptStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusGenerating:
		return "generating"
	case StatusOffering:
		return "offering"
	case StatusListening:
		return "listening"
	case StatusDecrypting:
		return "decrypting"
	case StatusValidating:
		return "validating"
	case StatusConnected:
		return "connected"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed-out"
	case StatusAborted:
		return "aborted"
	}
	return "unknown"
}

// Terminal reports whether the status ends the attempt.
func (s AttemptStatus) Terminal() bool {
	return s == StatusConnected || s == StatusFailed || s == StatusTimedOut || s == StatusAborted
}

// PairingResult is the credential bundle handed to the caller exactly once
// on the success path.
type PairingResult struct {
	RemotePublicKey string `json:"remote_public_key"`
	UserPublicKey   string `json:"user_public_key"`
	SecretKey       string `json:"secret_key"` // bech32-encoded ephemeral secret
	RelayURL        string `json:"relay_url"`
}
