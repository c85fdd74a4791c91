package crypto

import "crypto/rand"

// SecretLength is the fixed length of the pairing shared secret.
const SecretLength = 8

const secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSharedSecret returns a fresh random alphanumeric token of SecretLength
// characters. Rejection sampling keeps the draw uniform over the alphabet.
func NewSharedSecret() (string, error) {
	out := make([]byte, 0, SecretLength)
	buf := make([]byte, 1)
	// 248 is the largest multiple of len(secretAlphabet) below 256.
	const limit = byte(248)
	for len(out) < SecretLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		if buf[0] >= limit {
			continue
		}
		out = append(out, secretAlphabet[int(buf[0])%len(secretAlphabet)])
	}
	return string(out), nil
}
