package interfaces

import domaintypes "nestkeeper/internal/domain/types"

// EnvelopeDecrypter is the decrypt capability the pairing core consumes.
// Both schemes take the counterparty's public key and the ciphertext text
// form; each returns the plaintext or an error for that scheme alone.
type EnvelopeDecrypter interface {
	DecryptV2(counterparty domaintypes.X25519Public, ciphertext string) ([]byte, error)
	DecryptLegacy(counterparty domaintypes.X25519Public, ciphertext string) ([]byte, error)
}
