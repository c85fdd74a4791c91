package crypto

import (
	"nestkeeper/internal/domain"
	"nestkeeper/internal/util/memzero"
)

// Decrypter binds an ephemeral private key to both envelope schemes. Each
// pairing attempt owns one; it is discarded with the attempt.
type Decrypter struct {
	priv domain.X25519Private
}

// NewDecrypter returns a Decrypter for the given private key.
func NewDecrypter(priv domain.X25519Private) *Decrypter {
	return &Decrypter{priv: priv}
}

// DecryptV2 opens ciphertext under the v2 scheme.
func (d *Decrypter) DecryptV2(counterparty domain.X25519Public, ciphertext string) ([]byte, error) {
	return DecryptV2(d.priv, counterparty, ciphertext)
}

// DecryptLegacy opens ciphertext under the legacy scheme.
func (d *Decrypter) DecryptLegacy(counterparty domain.X25519Public, ciphertext string) ([]byte, error) {
	return DecryptLegacy(d.priv, counterparty, ciphertext)
}

// Wipe zeroizes the bound private key.
func (d *Decrypter) Wipe() {
	memzero.Zero(d.priv[:])
}

// Compile-time assertion that Decrypter implements domain.EnvelopeDecrypter.
var _ domain.EnvelopeDecrypter = (*Decrypter)(nil)
