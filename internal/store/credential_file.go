package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"nestkeeper/internal/domain"
)

const credentialFilename = "credential.json.enc"

// CredentialFileStore persists the pairing credential to disk, sealed under
// a passphrase-derived key.
type CredentialFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewCredentialFileStore returns a CredentialFileStore rooted at dir.
func NewCredentialFileStore(dir string) *CredentialFileStore {
	return &CredentialFileStore{dir: dir}
}

// SaveCredential writes the encrypted credential to disk.
func (s *CredentialFileStore) SaveCredential(passphrase string, res domain.PairingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	N, r, p := scryptParamsDefault()
	ct, err := encrypt(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, credentialFilename), ct, 0o600)
}

// LoadCredential reads and decrypts the credential. found is false when no
// pairing has been stored yet.
func (s *CredentialFileStore) LoadCredential(passphrase string) (domain.PairingResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(filepath.Join(s.dir, credentialFilename))
	if errors.Is(err, os.ErrNotExist) {
		return domain.PairingResult{}, false, nil
	}
	if err != nil {
		return domain.PairingResult{}, false, err
	}
	pt, err := decrypt(passphrase, b)
	if err != nil {
		return domain.PairingResult{}, false, err
	}
	var res domain.PairingResult
	if err := json.Unmarshal(pt, &res); err != nil {
		return domain.PairingResult{}, false, err
	}
	return res, true, nil
}

// DeleteCredential removes the stored credential; deleting a missing
// credential is not an error.
func (s *CredentialFileStore) DeleteCredential() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, credentialFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that CredentialFileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*CredentialFileStore)(nil)
