// Package interfaces declares the capabilities nestkeeper consumes and
// provides: the relay transport, the envelope decrypter, credential storage
// and the pairing service itself. Implementations live in their own
// packages and assert conformance at compile time.
package interfaces
