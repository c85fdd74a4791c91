// Package app wires application dependencies for the CLI.
//
// It loads the configuration, builds the credential store and relay client,
// and exposes the pairing service via the Wire struct for commands to use.
package app
