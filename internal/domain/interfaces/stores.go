package interfaces

import domaintypes "nestkeeper/internal/domain/types"

// CredentialStore persists the pairing credential bundle.
type CredentialStore interface {
	SaveCredential(passphrase string, res domaintypes.PairingResult) error
	LoadCredential(passphrase string) (domaintypes.PairingResult, bool, error)
	DeleteCredential() error
}
