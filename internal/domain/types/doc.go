// Package types declares the plain data model shared across nestkeeper:
// keys, relay events, pairing offers and results. It has no behaviour
// beyond small accessors and carries no dependencies.
package types
