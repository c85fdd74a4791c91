// Package pairing is the service layer over the pairing protocol: it owns
// the one active attempt per process, supersedes it on regeneration, and
// stores the resulting credential.
package pairing
