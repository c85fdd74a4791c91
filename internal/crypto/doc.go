// Package crypto implements nestkeeper's key material and envelope schemes:
// ephemeral X25519 key pairs, the alphanumeric pairing secret, the v2
// (HKDF + XChaCha20-Poly1305) and legacy (AES-256-CBC) payload envelopes,
// and the portable bech32 secret-key encoding.
package crypto
