package pairing

import (
	"fmt"

	"nestkeeper/internal/domain"
)

// decryptEnvelope opens one inbound ciphertext: the v2 scheme first, then
// the legacy scheme only after a genuine v2 failure. Whatever the legacy
// path yields still has to survive parseResponse before it counts.
func decryptEnvelope(dec domain.EnvelopeDecrypter, sender domain.X25519Public, ciphertext string) ([]byte, error) {
	pt, v2Err := dec.DecryptV2(sender, ciphertext)
	if v2Err == nil {
		return pt, nil
	}
	pt, legacyErr := dec.DecryptLegacy(sender, ciphertext)
	if legacyErr == nil {
		return pt, nil
	}
	return nil, fmt.Errorf("%w (v2: %v; legacy: %v)", errDecryptionExhausted, v2Err, legacyErr)
}
