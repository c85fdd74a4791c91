package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"nestkeeper/internal/domain"
	"nestkeeper/internal/util/memzero"
)

// The v2 envelope is base64(version || nonce || ciphertext): a single 0x02
// version byte, a 24-byte XChaCha20-Poly1305 nonce, then the sealed payload.
// The AEAD key is derived from the X25519 shared secret with HKDF-SHA256.
const (
	v2Version  = 0x02
	v2NonceLen = chacha20poly1305.NonceSizeX
)

var v2Salt = []byte("nestkeeper envelope v2")

// ErrNotV2 reports that the payload is not a well-formed v2 envelope. The
// decryptor uses it to distinguish "wrong scheme" from a genuine AEAD
// failure, though both send the caller to the legacy fallback.
var ErrNotV2 = errors.New("not a v2 envelope")

// EncryptV2 seals plaintext for the counterparty under the v2 scheme.
func EncryptV2(priv domain.X25519Private, counterparty domain.X25519Public, plaintext []byte) (string, error) {
	key, err := v2Key(priv, counterparty)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	payload := make([]byte, 1+v2NonceLen, 1+v2NonceLen+len(plaintext)+aead.Overhead())
	payload[0] = v2Version
	if _, err := rand.Read(payload[1 : 1+v2NonceLen]); err != nil {
		return "", err
	}
	payload = aead.Seal(payload, payload[1:1+v2NonceLen], plaintext, nil)
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecryptV2 opens a v2 envelope from the counterparty.
func DecryptV2(priv domain.X25519Private, counterparty domain.X25519Public, ciphertext string) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, ErrNotV2
	}
	if len(payload) < 1+v2NonceLen+chacha20poly1305.Overhead || payload[0] != v2Version {
		return nil, ErrNotV2
	}

	key, err := v2Key(priv, counterparty)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, payload[1:1+v2NonceLen], payload[1+v2NonceLen:], nil)
	if err != nil {
		return nil, fmt.Errorf("v2 open: %w", err)
	}
	return pt, nil
}

// v2Key derives the per-pair AEAD key from the X25519 shared secret.
func v2Key(priv domain.X25519Private, counterparty domain.X25519Public) ([]byte, error) {
	shared, err := SharedX(priv, counterparty)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(shared)

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, v2Salt, nil), key); err != nil {
		return nil, err
	}
	return key, nil
}
