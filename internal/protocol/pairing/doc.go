// Package pairing implements the remote-signer pairing exchange: ephemeral
// key material, the connection-offer URI, and the bounded listen loop that
// decrypts, interprets and materializes the signer's response.
//
// One Attempt covers exactly one exchange. The caller displays the offer,
// then Awaits; the first inbound message that decrypts (v2 scheme, then
// legacy fallback) and parses as a response decides the outcome. Messages
// that do neither are skipped. A 120-second deadline, explicit cancellation
// and the response stream are raced uniformly, so teardown from another
// goroutine is always safe and idempotent.
package pairing
