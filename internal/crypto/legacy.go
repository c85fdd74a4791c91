package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"nestkeeper/internal/domain"
	"nestkeeper/internal/util/memzero"
)

// The legacy envelope is "base64(ciphertext)?iv=base64(iv)": AES-256-CBC
// with the raw X25519 shared secret as key and PKCS#7 padding. Kept only so
// older signers can complete pairing; new traffic uses the v2 scheme.

// ErrNotLegacy reports that the payload is not a well-formed legacy envelope.
var ErrNotLegacy = errors.New("not a legacy envelope")

// EncryptLegacy seals plaintext for the counterparty under the legacy scheme.
func EncryptLegacy(priv domain.X25519Private, counterparty domain.X25519Public, plaintext []byte) (string, error) {
	key, err := SharedX(priv, counterparty)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return base64.StdEncoding.EncodeToString(ct) + "?iv=" + base64.StdEncoding.EncodeToString(iv), nil
}

// DecryptLegacy opens a legacy envelope from the counterparty.
func DecryptLegacy(priv domain.X25519Private, counterparty domain.X25519Public, ciphertext string) ([]byte, error) {
	body, ivPart, ok := strings.Cut(ciphertext, "?iv=")
	if !ok {
		return nil, ErrNotLegacy
	}
	ct, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrNotLegacy
	}
	iv, err := base64.StdEncoding.DecodeString(ivPart)
	if err != nil {
		return nil, ErrNotLegacy
	}
	if len(iv) != aes.BlockSize || len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return nil, ErrNotLegacy
	}

	key, err := SharedX(priv, counterparty)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)
	return pkcs7Unpad(pt, aes.BlockSize)
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, ErrNotLegacy
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, ErrNotLegacy
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrNotLegacy
		}
	}
	return b[:len(b)-n], nil
}
