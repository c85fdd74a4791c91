// Package memzero wipes sensitive byte material once it is no longer needed.
package memzero
