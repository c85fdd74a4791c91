// Package commands holds the nestkeeper CLI: pairing with a remote signer,
// inspecting and removing the stored credential, and probing the relay.
package commands
