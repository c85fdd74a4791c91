package domain

import (
	interfaces "nestkeeper/internal/domain/interfaces"
	types "nestkeeper/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	X25519Public      = types.X25519Public
	X25519Private     = types.X25519Private
	Permission        = types.Permission
	RelayEndpoint     = types.RelayEndpoint
	Event             = types.Event
	Filter            = types.Filter
	EphemeralIdentity = types.EphemeralIdentity
	ConnectionOffer   = types.ConnectionOffer
	AttemptStatus     = types.AttemptStatus
	PairingResult     = types.PairingResult
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Subscription      = interfaces.Subscription
	RelayClient       = interfaces.RelayClient
	EnvelopeDecrypter = interfaces.EnvelopeDecrypter
	CredentialStore   = interfaces.CredentialStore
	PairingAttempt    = interfaces.PairingAttempt
	PairingService    = interfaces.PairingService
)

// Re-exported constants so callers rarely need the types subpackage.
const (
	KindPairing = types.KindPairing
	KindPing    = types.KindPing

	StatusIdle       = types.StatusIdle
	StatusGenerating = types.StatusGenerating
	StatusOffering   = types.StatusOffering
	StatusListening  = types.StatusListening
	StatusDecrypting = types.StatusDecrypting
	StatusValidating = types.StatusValidating
	StatusConnected  = types.StatusConnected
	StatusFailed     = types.StatusFailed
	StatusTimedOut   = types.StatusTimedOut
	StatusAborted    = types.StatusAborted
)

// ParsePublicHex decodes a 64-character lowercase hex public key.
func ParsePublicHex(s string) (X25519Public, bool) { return types.ParsePublicHex(s) }

// DefaultPermissions is the fixed capability set embedded in offers.
func DefaultPermissions() []Permission { return types.DefaultPermissions() }
