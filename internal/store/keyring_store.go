package store

import (
	"encoding/json"
	"errors"

	"github.com/zalando/go-keyring"

	"nestkeeper/internal/domain"
)

const (
	keyringService = "nestkeeper"
	keyringUser    = "pairing-credential"
)

// KeyringStore keeps the pairing credential in the OS keyring instead of an
// encrypted file. The keyring supplies the at-rest protection, so the
// passphrase arguments are ignored.
type KeyringStore struct{}

// NewKeyringStore returns a keyring-backed credential store.
func NewKeyringStore() *KeyringStore { return &KeyringStore{} }

// SaveCredential stores the credential under the nestkeeper keyring entry.
func (s *KeyringStore) SaveCredential(_ string, res domain.PairingResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return keyring.Set(keyringService, keyringUser, string(raw))
}

// LoadCredential retrieves the credential; found is false when the entry
// does not exist.
func (s *KeyringStore) LoadCredential(_ string) (domain.PairingResult, bool, error) {
	raw, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return domain.PairingResult{}, false, nil
	}
	if err != nil {
		return domain.PairingResult{}, false, err
	}
	var res domain.PairingResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return domain.PairingResult{}, false, err
	}
	return res, true, nil
}

// DeleteCredential removes the keyring entry; a missing entry is not an error.
func (s *KeyringStore) DeleteCredential() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Compile-time assertion that KeyringStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*KeyringStore)(nil)
