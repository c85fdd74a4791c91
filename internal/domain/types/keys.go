package types

import "encoding/hex"

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// Hex returns the key as 64 lowercase hex characters, the form used to
// address relay events.
func (p X25519Public) Hex() string { return hex.EncodeToString(p[:]) }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// ParsePublicHex decodes a 64-character lowercase hex public key.
func ParsePublicHex(s string) (X25519Public, bool) {
	var p X25519Public
	if len(s) != 64 {
		return p, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return p, false
	}
	copy(p[:], b)
	return p, true
}
