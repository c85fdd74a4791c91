// Package store persists the pairing credential: either as an encrypted
// JSON blob on disk (scrypt-derived key, ChaCha20-Poly1305) or in the OS
// keyring. File writes go through a temp file and rename.
package store
