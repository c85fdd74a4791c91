// Package domain re-exports the nestkeeper data model and capability
// interfaces under one import path. The declarations themselves live in the
// types and interfaces subpackages.
package domain
